package domain

import (
	"time"

	"github.com/google/uuid"
)

// GatewayKind identifies the supported gateway device families.
type GatewayKind string

const (
	GatewayKindUDM GatewayKind = "UDM"
	GatewayKindUCG GatewayKind = "UCG"
)

// GatewayStatus represents the last known connection state of a gateway.
// Transitions are driven by the status poll job, never by the registry's
// own CRUD operations (creation always starts at offline).
type GatewayStatus string

const (
	GatewayStatusOnline  GatewayStatus = "online"
	GatewayStatusOffline GatewayStatus = "offline"
	GatewayStatusError   GatewayStatus = "error"
)

// Gateway represents a configured router/gateway endpoint.
// Gateways are persisted as a JSON array under a single state record,
// not as individual rows.
type Gateway struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	APIBaseURL  string        `json:"apiBaseUrl"`
	APIKey      string        `json:"apiKey"`
	Kind        GatewayKind   `json:"kind"`
	Status      GatewayStatus `json:"status"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// UserRole represents the role of an application user.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// User represents an application user account. Credentials are not stored
// on the user record; verification is delegated to auth.CredentialVerifier.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// StateRecord is the single persisted table: one row per state key, each
// holding a full JSON document. Writes overwrite the whole record
// (last-writer-wins, no version check).
type StateRecord struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName overrides the gorm table name for state records.
func (StateRecord) TableName() string {
	return "state_records"
}
