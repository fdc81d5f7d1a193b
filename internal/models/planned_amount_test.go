package models_test

import (
	"github.com/paycycle/backend/internal/models"
	"github.com/paycycle/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPlannedAmountRounding() {
	category := suite.createTestCategory(models.Category{})
	period := suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 14),
	})

	planned := suite.createTestPlannedAmount(models.PlannedAmount{
		CategoryID:  category.ID,
		PayPeriodID: period.ID,
		Amount:      decimal.NewFromFloat(100.005),
	})

	assert.True(suite.T(), planned.Amount.Equal(decimal.NewFromFloat(100.01)), "amount is %s", planned.Amount)
}

func (suite *TestSuiteStandard) TestPlannedAmountUniquePerCategoryAndPeriod() {
	category := suite.createTestCategory(models.Category{})
	period := suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 14),
	})

	suite.createTestPlannedAmount(models.PlannedAmount{
		CategoryID:  category.ID,
		PayPeriodID: period.ID,
		Amount:      decimal.NewFromFloat(100),
	})

	duplicate := models.PlannedAmount{
		CategoryID:  category.ID,
		PayPeriodID: period.ID,
		Amount:      decimal.NewFromFloat(200),
	}

	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrPlannedAmountNotUnique)
}

func (suite *TestSuiteStandard) TestPlannedAmountParentOnlyCategory() {
	category := suite.createTestCategory(models.Category{ParentOnly: true})
	period := suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 14),
	})

	planned := models.PlannedAmount{
		CategoryID:  category.ID,
		PayPeriodID: period.ID,
		Amount:      decimal.NewFromFloat(100),
	}

	err := models.DB.Create(&planned).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryIsParentOnly)
}

func (suite *TestSuiteStandard) TestUpsertPlannedAmount() {
	category := suite.createTestCategory(models.Category{})
	period := suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 14),
	})

	planned, err := models.UpsertPlannedAmount(models.DB, category.ID, period.ID, decimal.NewFromFloat(100), nil)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), planned.Amount.Equal(decimal.NewFromFloat(100)))

	// The second upsert overwrites the amount instead of creating a row
	dueDate := types.NewDate(2024, 1, 10)
	updated, err := models.UpsertPlannedAmount(models.DB, category.ID, period.ID, decimal.NewFromFloat(150), &dueDate)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), planned.ID, updated.ID)

	var count int64
	err = models.DB.Model(&models.PlannedAmount{}).Count(&count).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(1), count)

	var reloaded models.PlannedAmount
	err = models.DB.First(&reloaded, planned.ID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), reloaded.Amount.Equal(decimal.NewFromFloat(150)))
	assert.NotNil(suite.T(), reloaded.DueDate)
	assert.True(suite.T(), reloaded.DueDate.Equal(dueDate))
}

func (suite *TestSuiteStandard) TestSetDueDate() {
	category := suite.createTestCategory(models.Category{})
	period := suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 14),
	})

	planned := suite.createTestPlannedAmount(models.PlannedAmount{
		CategoryID:  category.ID,
		PayPeriodID: period.ID,
		Amount:      decimal.NewFromFloat(100),
	})

	dueDate := types.NewDate(2024, 1, 5)
	err := planned.SetDueDate(models.DB, &dueDate)
	assert.Nil(suite.T(), err)

	var reloaded models.PlannedAmount
	err = models.DB.First(&reloaded, planned.ID).Error
	assert.Nil(suite.T(), err)
	assert.NotNil(suite.T(), reloaded.DueDate)

	// nil clears the due date again
	err = planned.SetDueDate(models.DB, nil)
	assert.Nil(suite.T(), err)

	reloaded = models.PlannedAmount{}
	err = models.DB.First(&reloaded, planned.ID).Error
	assert.Nil(suite.T(), err)
	assert.Nil(suite.T(), reloaded.DueDate)
}

func (suite *TestSuiteStandard) TestCreateRecurringPlansMonthly() {
	category := suite.createTestCategory(models.Category{})

	// The first and third period contain a 15th, the second does not
	suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 1, 8),
		EndDate:   types.NewDate(2024, 1, 21),
	})
	suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 1, 22),
		EndDate:   types.NewDate(2024, 2, 4),
	})
	suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 2, 5),
		EndDate:   types.NewDate(2024, 2, 18),
	})

	created, err := models.CreateRecurringPlans(models.DB, category.ID, decimal.NewFromFloat(50), 15, models.FrequencyMonthly)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 2, created)

	var plans []models.PlannedAmount
	err = models.DB.Order("due_date ASC").Find(&plans).Error
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), plans, 2)

	assert.NotNil(suite.T(), plans[0].DueDate)
	assert.True(suite.T(), plans[0].DueDate.Equal(types.NewDate(2024, 1, 15)))
	assert.NotNil(suite.T(), plans[1].DueDate)
	assert.True(suite.T(), plans[1].DueDate.Equal(types.NewDate(2024, 2, 15)))

	// Running again does not duplicate the plans
	created, err = models.CreateRecurringPlans(models.DB, category.ID, decimal.NewFromFloat(50), 15, models.FrequencyMonthly)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, created)
}

func (suite *TestSuiteStandard) TestCreateRecurringPlansEveryPeriod() {
	category := suite.createTestCategory(models.Category{})

	suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 1, 1),
		EndDate:   types.NewDate(2024, 1, 14),
	})

	// This period is too short for a due day 10 days in
	suite.createTestPayPeriod(models.PayPeriod{
		StartDate: types.NewDate(2024, 1, 15),
		EndDate:   types.NewDate(2024, 1, 19),
	})

	created, err := models.CreateRecurringPlans(models.DB, category.ID, decimal.NewFromFloat(25), 10, models.FrequencyEveryPeriod)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, created)

	var plan models.PlannedAmount
	err = models.DB.First(&plan).Error
	assert.Nil(suite.T(), err)
	assert.NotNil(suite.T(), plan.DueDate)
	assert.True(suite.T(), plan.DueDate.Equal(types.NewDate(2024, 1, 10)))
}

func (suite *TestSuiteStandard) TestCreateRecurringPlansInvalidFrequency() {
	category := suite.createTestCategory(models.Category{})

	_, err := models.CreateRecurringPlans(models.DB, category.ID, decimal.NewFromFloat(25), 10, models.FrequencyBiMonthly)
	assert.ErrorIs(suite.T(), err, models.ErrInvalidFrequency)
}
