package models

import sm "onepercent/internal/shared/models"

type (
	User           = sm.User
	Preference     = sm.Preference
	Plan           = sm.Plan
	MealCategory   = sm.MealCategory
	Meal           = sm.Meal
	CategoryRef    = sm.CategoryRef
	Order          = sm.Order
	OrderLineItem  = sm.OrderLineItem
	OrderDetails   = sm.OrderDetails
	Notification   = sm.Notification
	Statistics     = sm.Statistics
	MonthlyEarning = sm.MonthlyEarning
	MonthlyUsers   = sm.MonthlyUsers
	Pagination     = sm.Pagination
	TokenResponse  = sm.TokenResponse
	FieldError     = sm.FieldError
	ErrorResponse  = sm.ErrorResponse
)
