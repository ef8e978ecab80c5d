package model

import (
	"time"

	"github.com/google/uuid"
)

// FoodOrder is an optional line attached to a coordinate sample.
type FoodOrder struct {
	ItemName string `json:"itemName" validate:"required,max=255"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// Coordinate is a single geo-sample.
type Coordinate struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	Lat        float64     `json:"lat" db:"lat"`
	Lon        float64     `json:"lon" db:"lon"`
	FoodOrders []FoodOrder `json:"foodOrders,omitempty" db:"food_orders"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
}

// CoordinateInput is one element of a batch insert request. Lat and Lon are
// pointers so that a missing value can be told apart from zero.
type CoordinateInput struct {
	Lat        *float64    `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon        *float64    `json:"lon" validate:"required,gte=-180,lte=180"`
	FoodOrders []FoodOrder `json:"foodOrders,omitempty" validate:"omitempty,dive"`
}

// CoordinateBatchResponse reports the mean of the batch that was just inserted.
type CoordinateBatchResponse struct {
	Message       string  `json:"message"`
	InsertedCount int     `json:"insertedCount"`
	MeanLatitude  float64 `json:"meanLatitude"`
	MeanLongitude float64 `json:"meanLongitude"`
}

// MeanCoordinates is the mean over every stored sample.
type MeanCoordinates struct {
	MeanLat float64 `json:"meanLat"`
	MeanLon float64 `json:"meanLon"`
	Count   int64   `json:"count"`
}

// CoordinateBatchRequest is the body of a batch insert.
type CoordinateBatchRequest struct {
	Coordinates []CoordinateInput `json:"coordinates"`
}
