package specification

import "gorm.io/gorm"

type ByStripeSessionID struct {
	StripeSessionID string
}

func (s ByStripeSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stripe_session_id = ?", s.StripeSessionID)
}

type ByPaymentStatus struct {
	Status string
}

func (s ByPaymentStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_status = ?", s.Status)
}

type BySettingType struct {
	Type string
}

func (s BySettingType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}
