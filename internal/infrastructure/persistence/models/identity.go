package models

import (
	"github.com/google/uuid"
	"github.com/holycity/portal/internal/domain/identity"
)

// UserModel is the persistence model for portal login accounts
type UserModel struct {
	BaseModel
	Username     string     `gorm:"size:80;not null;uniqueIndex"`
	PasswordHash string     `gorm:"size:255;not null"`
	Role         string     `gorm:"size:20;not null"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the table name
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
		EmployeeID:   m.EmployeeID,
	}
}

// UserModelFromDomain converts a domain user to the persistence model
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		EmployeeID:   u.EmployeeID,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
