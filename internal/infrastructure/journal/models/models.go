// Package models holds the gorm-tagged storage schema for the journal
// tables. The runtime repositories speak raw SQL over pgx; these models
// exist for cmd/migrate, which owns schema creation and seeding.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	UUID      uuid.UUID `gorm:"primaryKey;column:uuid;type:uuid"`
	Username  string    `gorm:"column:username;type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }

type Project struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	UserUUID  uuid.UUID `gorm:"column:user_uuid;type:uuid;not null;uniqueIndex:idx_projects_user_name"`
	User      *User     `gorm:"foreignKey:UserUUID;references:UUID;constraint:OnDelete:CASCADE"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_projects_user_name"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;default:CURRENT_TIMESTAMP"`
}

func (Project) TableName() string { return "projects" }

type Trade struct {
	ID          int64      `gorm:"primaryKey;column:id;autoIncrement"`
	ProjectID   int64      `gorm:"column:project_id;not null;index"`
	Project     *Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Symbol      string     `gorm:"column:symbol;type:varchar(50);not null"`
	OpenDate    time.Time  `gorm:"column:open_date;type:timestamptz;not null"`
	CloseDate   *time.Time `gorm:"column:close_date;type:timestamptz"`
	OpeningNote *string    `gorm:"column:opening_note;type:text"`
	ClosingNote *string    `gorm:"column:closing_note;type:text"`
	Tags        []*Tag     `gorm:"many2many:trade_tags;constraint:OnDelete:CASCADE"`
}

func (Trade) TableName() string { return "trades" }

type Leg struct {
	ID         int64            `gorm:"primaryKey;column:id;autoIncrement"`
	TradeID    int64            `gorm:"column:trade_id;not null;index"`
	Trade      *Trade           `gorm:"foreignKey:TradeID;constraint:OnDelete:CASCADE"`
	Side       string           `gorm:"column:side;type:varchar(20);not null"`
	Quantity   decimal.Decimal  `gorm:"column:quantity;type:numeric(18,8);not null"`
	OpenPrice  decimal.Decimal  `gorm:"column:open_price;type:numeric(18,8);not null"`
	ClosePrice *decimal.Decimal `gorm:"column:close_price;type:numeric(18,8)"`
	Strike     *decimal.Decimal `gorm:"column:strike;type:numeric(18,8)"`
	Expiration *time.Time       `gorm:"column:expiration;type:timestamptz"`
	PutCall    *string          `gorm:"column:put_call;type:varchar(10)"`
}

func (Leg) TableName() string { return "legs" }

type Tag struct {
	ID   int64  `gorm:"primaryKey;column:id;autoIncrement"`
	Name string `gorm:"column:name;type:varchar(255);not null;uniqueIndex"`
}

func (Tag) TableName() string { return "tags" }
