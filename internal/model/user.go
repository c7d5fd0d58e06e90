package model

// User is an operator account. Password always holds a bcrypt hash, never
// the plain text.
type User struct {
	ID       int    `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password string `json:"password,omitempty" gorm:"type:varchar(255);not null"`
	Company  string `json:"company_name" gorm:"type:varchar(255)"`
}
