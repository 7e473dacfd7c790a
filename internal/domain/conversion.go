package domain

import "time" // Time for record timestamps

// ConversionRecord Model, one row per successful conversion
type ConversionRecord struct {
	ID             uint      `gorm:"primaryKey" json:"-"`                                                                           // Primary key
	Username       string    `gorm:"size:64;not null;index" json:"username"`                                                        // Foreign key to User.Username
	User           *User     `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"` // Owning user
	ConversionType string    `gorm:"column:conversion_type;size:32;not null" json:"conversion_type"`                                // e.g. "USD to EUR"
	InputValue     float64   `gorm:"column:input_value;not null" json:"input_value"`                                                // Amount before conversion
	ConvertedValue float64   `gorm:"column:converted_value;not null" json:"converted_value"`                                        // Amount after conversion
	Timestamp      time.Time `gorm:"column:timestamp;not null;index" json:"timestamp"`                                              // Creation time
}

// TableName returns the database table name for the ConversionRecord model
func (ConversionRecord) TableName() string {
	return "conversion_history"
}

// ConversionType builds the ledger label for a conversion between two currencies
func ConversionType(from, to string) string {
	return from + " to " + to
}
