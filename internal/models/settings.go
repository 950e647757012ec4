package models

import "time"

type UserRole string

const (
	RoleSuperAdmin   UserRole = "Super Admin"
	RoleBillingAdmin UserRole = "Billing Admin"
	RoleTechnician   UserRole = "Technician"
	RoleReadOnly     UserRole = "Read-only"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleBillingAdmin, RoleTechnician, RoleReadOnly:
		return true
	}
	return false
}

type UserStatus string

const (
	StatusActive      UserStatus = "Active"
	StatusInvited     UserStatus = "Invited"
	StatusDeactivated UserStatus = "Deactivated"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInvited, StatusDeactivated:
		return true
	}
	return false
}

type User struct {
	ID           string     `json:"id"               yaml:"id"`
	Name         string     `json:"name"             yaml:"name"`
	Email        string     `json:"email"            yaml:"email"`
	Role         UserRole   `json:"role"             yaml:"role"`
	Status       UserStatus `json:"status"           yaml:"status"`
	LastLogin    string     `json:"lastLogin"        yaml:"lastLogin"`
	Avatar       string     `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	PasswordHash string     `json:"-"                yaml:"-"`
}

type InviteUserRequest struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

type UpdateUserRequest struct {
	Name   *string     `json:"name,omitempty"`
	Role   *UserRole   `json:"role,omitempty"`
	Status *UserStatus `json:"status,omitempty"`
}

type PlanFeature struct {
	Name     string `json:"name"              yaml:"name"`
	Included bool   `json:"included"          yaml:"included"`
	Limit    string `json:"limit,omitempty"   yaml:"limit,omitempty"`
	Tooltip  string `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

type SubscriptionPlan struct {
	ID           string        `json:"id"           yaml:"id"`
	Name         string        `json:"name"         yaml:"name"`
	Slug         string        `json:"slug"         yaml:"slug"`
	PriceMonthly float64       `json:"priceMonthly" yaml:"priceMonthly"`
	PriceYearly  float64       `json:"priceYearly"  yaml:"priceYearly"`
	Description  string        `json:"description"  yaml:"description"`
	Features     []PlanFeature `json:"features"     yaml:"features"`
	MachineLimit int           `json:"machineLimit" yaml:"machineLimit"`
	UserLimit    int           `json:"userLimit"    yaml:"userLimit"`
	IsPopular    bool          `json:"isPopular"    yaml:"isPopular"`
}

type Invoice struct {
	ID     string   `json:"id"     yaml:"id"`
	Number string   `json:"number" yaml:"number"`
	Date   string   `json:"date"   yaml:"date"`
	Amount float64  `json:"amount" yaml:"amount"`
	Status string   `json:"status" yaml:"status"`
	PDFURL string   `json:"pdfUrl" yaml:"pdfUrl"`
	Items  []string `json:"items"  yaml:"items"`
}

type AuditLogEntry struct {
	ID        string    `json:"id"        yaml:"id"`
	Action    string    `json:"action"    yaml:"action"`
	User      string    `json:"user"      yaml:"user"`
	UserRole  string    `json:"userRole"  yaml:"userRole"`
	Target    string    `json:"target"    yaml:"target"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	IPAddress string    `json:"ipAddress" yaml:"ipAddress"`
	Status    string    `json:"status"    yaml:"status"`
}

type BrandingConfig struct {
	ProductName        string `json:"productName"                  yaml:"productName"`
	PrimaryColor       string `json:"primaryColor"                 yaml:"primaryColor"`
	AccentColor        string `json:"accentColor"                  yaml:"accentColor"`
	LogoURL            string `json:"logoUrl"                      yaml:"logoUrl"`
	FaviconURL         string `json:"faviconUrl,omitempty"         yaml:"faviconUrl,omitempty"`
	LoginBackgroundURL string `json:"loginBackgroundUrl,omitempty" yaml:"loginBackgroundUrl,omitempty"`
	CustomDomain       string `json:"customDomain,omitempty"       yaml:"customDomain,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        User     `json:"user"`
	Role        UserRole `json:"role"`
}
