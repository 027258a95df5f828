package models

import (
	"time"
)

// DefaultPropertyImageURL 新房源的默认配图
const DefaultPropertyImageURL = "https://images.unsplash.com/photo-1518780664697-55e3ad937233?auto=format&fit=crop&w=800"

// DefaultProperty 新建房源的默认字段
func DefaultProperty() Property {
	return Property{
		Name:      "New Property",
		Address:   "",
		AddressID: "",
		Type:      PropertyTypeApartment,
		Bedrooms:  1,
		Bathrooms: 1,
		Rent:      0,
		Status:    PropertyStatusAvailable,
		ImageURL:  DefaultPropertyImageURL,
	}
}

// DefaultTenant 新建租客的默认字段（租期从今天起一年）
func DefaultTenant() Tenant {
	today := time.Now().Truncate(24 * time.Hour)
	return Tenant{
		LeaseStart: today,
		LeaseEnd:   today.AddDate(1, 0, 0),
	}
}
