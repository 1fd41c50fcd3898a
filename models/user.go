package models

import "time"

// User is a storefront account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	Country   string    `json:"country,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserPatch carries a partial profile update; nil fields are left alone.
type UserPatch struct {
	Username  *string
	Password  *string
	Email     *string
	FirstName *string
	LastName  *string
	Address   *string
	City      *string
	State     *string
	ZipCode   *string
	Country   *string
	Phone     *string
	IsAdmin   *bool
}

// Apply merges the non-nil fields of p onto u.
func (p UserPatch) Apply(u *User) {
	setString(&u.Username, p.Username)
	setString(&u.Password, p.Password)
	setString(&u.Email, p.Email)
	setString(&u.FirstName, p.FirstName)
	setString(&u.LastName, p.LastName)
	setString(&u.Address, p.Address)
	setString(&u.City, p.City)
	setString(&u.State, p.State)
	setString(&u.ZipCode, p.ZipCode)
	setString(&u.Country, p.Country)
	setString(&u.Phone, p.Phone)
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// LoginRequest is validated by the auth service so a missing field produces
// the single "Email and password are required" message.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zipCode"`
	Country   *string `json:"country"`
	Phone     *string `json:"phone"`
}

// Patch converts the request to a UserPatch. IsAdmin is never taken from
// the client.
func (r UpdateProfileRequest) Patch() UserPatch {
	return UserPatch{
		Username:  r.Username,
		Password:  r.Password,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Address:   r.Address,
		City:      r.City,
		State:     r.State,
		ZipCode:   r.ZipCode,
		Country:   r.Country,
		Phone:     r.Phone,
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
