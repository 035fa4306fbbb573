package services

import "errors"

var (
	ErrBabyNotFound     = errors.New("baby not found")
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrInvalidProfile   = errors.New("baby profile is missing a birth date")
)
