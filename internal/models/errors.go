package models

import (
	"errors"
)

// General errors. Controllers map ErrResourceNotFound to 404 and
// ErrGeneral to 500; every other error from this package is a 400.
var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Category group errors
var (
	ErrInvalidCategoryType    = errors.New("the category type must be 'expense' or 'income'")
	ErrGroupHasCategories     = errors.New("the group still contains categories, reassign them before deleting the group")
	ErrGroupTypeHasCategories = errors.New("the group type can not change while the group contains categories")
)

// Category errors
var (
	ErrCategoryTypeDiffersFromGroup  = errors.New("the category type must match the type of its group")
	ErrCategoryTypeDiffersFromParent = errors.New("the category type must match the type of its parent")
	ErrParentArchived                = errors.New("the parent category is archived")
	ErrParentOnlyWithParent          = errors.New("parent-only categories can not have a parent themselves")
	ErrCategoryCycle                 = errors.New("the category can not be its own ancestor")
	ErrParentOnlyHasData             = errors.New("the category has transactions or planned amounts, parent-only categories must not hold either")
	ErrCategoryIsParentOnly          = errors.New("parent-only categories can not hold transactions or planned amounts")
	ErrCategoryHasActiveChildren     = errors.New("the category still has active subcategories")
	ErrCategoryHasChildren           = errors.New("the category still has subcategories")
	ErrCategoryHasData               = errors.New("the category has transactions or planned amounts, archive it instead of deleting it")
	ErrInvalidDirection              = errors.New("the direction must be 'up' or 'down'")
)

// Pay period errors
var (
	ErrPeriodEndsBeforeStart  = errors.New("the pay period must not end before it starts")
	ErrPeriodStartNotUnique   = errors.New("a pay period with this start date already exists")
	ErrPeriodCountNotPositive = errors.New("the number of pay periods to generate must be larger than zero")
)

// Planned amount errors
var ErrPlannedAmountNotUnique = errors.New("there already is a planned amount for this category and pay period")

// Recurring template errors
var ErrInvalidFrequency = errors.New("the frequency must be 'every_period', 'monthly' or 'bi_monthly'")
