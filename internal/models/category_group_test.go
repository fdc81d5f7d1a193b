package models_test

import (
	"github.com/paycycle/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoryGroupTrimWhitespace() {
	group := suite.createTestCategoryGroup(models.CategoryGroup{Name: "  Housing\t"})

	assert.Equal(suite.T(), "Housing", group.Name)
}

func (suite *TestSuiteStandard) TestCategoryGroupInvalidType() {
	group := models.CategoryGroup{Name: "Broken", Type: "neither"}

	err := models.DB.Create(&group).Error
	assert.ErrorIs(suite.T(), err, models.ErrInvalidCategoryType)
}

func (suite *TestSuiteStandard) TestCategoryGroupTypeChange() {
	group := suite.createTestCategoryGroup(models.CategoryGroup{Type: models.CategoryTypeExpense})

	// Without categories, the type can still change
	err := models.DB.Model(&group).Select("Type").Updates(models.CategoryGroup{Type: models.CategoryTypeIncome}).Error
	assert.Nil(suite.T(), err)

	suite.createTestCategory(models.Category{GroupID: group.ID, Type: models.CategoryTypeIncome})

	err = models.DB.Model(&group).Select("Type").Updates(models.CategoryGroup{Type: models.CategoryTypeExpense}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGroupTypeHasCategories)
}

func (suite *TestSuiteStandard) TestCategoryGroupDeleteWithCategories() {
	group := suite.createTestCategoryGroup(models.CategoryGroup{})
	suite.createTestCategory(models.Category{GroupID: group.ID})

	err := models.DB.Delete(&group).Error
	assert.ErrorIs(suite.T(), err, models.ErrGroupHasCategories)
}

func (suite *TestSuiteStandard) TestCategoryGroupCategories() {
	group := suite.createTestCategoryGroup(models.CategoryGroup{})

	suite.createTestCategory(models.Category{GroupID: group.ID, Name: "Second", SortOrder: 2})
	suite.createTestCategory(models.Category{GroupID: group.ID, Name: "First", SortOrder: 1})

	// A category in another group must not show up
	suite.createTestCategory(models.Category{Name: "Elsewhere"})

	categories, err := group.Categories(models.DB)
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), "First", categories[0].Name)
	assert.Equal(suite.T(), "Second", categories[1].Name)
}
