package model

type User struct {
	ID           int64  `json:"id"       db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string `json:"username" db:"username"      gorm:"column:username;not null;unique"`
	Email        string `json:"email"    db:"email"         gorm:"column:email;not null;unique"`
	PasswordHash string `json:"-"        db:"password_hash" gorm:"column:password_hash;not null"` // opaque, hashed upstream
}

func (User) TableName() string { return "users" }
