package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// nameFilter filters on a substring match for the name column. A name
// parameter that is set but empty matches resources with an empty name.
func nameFilter(query *gorm.DB, setFields []string, name string) *gorm.DB {
	if name != "" {
		return query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	}

	if slices.Contains(setFields, "Name") {
		return query.Where("name = ''")
	}

	return query
}
