package entity

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Kind string

const (
	KindStudent       Kind = "student"
	KindTeacher       Kind = "teacher"
	KindAdministrator Kind = "administrator"
	KindUtility       Kind = "utility"
)

// LookupOrder is the precedence used when a code is searched across kinds.
var LookupOrder = []Kind{KindStudent, KindTeacher, KindAdministrator, KindUtility}

// Title is the capitalised singular used in client messages ("Student Added").
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Plural is the collection name used in routes and response keys. Utility
// keeps the "utilitys" spelling existing clients call.
func (k Kind) Plural() string {
	return string(k) + "s"
}

// RoleField is the name of the kind-specific attribute.
func (k Kind) RoleField() string {
	if k == KindStudent {
		return "level"
	}
	return "position"
}

type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

var ErrInvalidAddress = errors.New("address must be a JSON object")

// ParseAddress decodes the serialized address sent with multipart forms.
func ParseAddress(raw string) (Address, error) {
	var addr Address
	if err := json.Unmarshal([]byte(raw), &addr); err != nil {
		return Address{}, errors.Join(ErrInvalidAddress, err)
	}
	return addr, nil
}

// DecodeAddress accepts either an address object or its serialized string
// form, as update payloads carry both.
func DecodeAddress(raw json.RawMessage) (Address, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseAddress(s)
	}
	var addr Address
	if err := json.Unmarshal(raw, &addr); err != nil {
		return Address{}, errors.Join(ErrInvalidAddress, err)
	}
	return addr, nil
}

// Person is the shape shared by every personnel kind.
type Person struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code     string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:100;not null;index" json:"email"`
	Number   string    `gorm:"size:30;not null" json:"number"`
	Address  Address   `gorm:"type:jsonb;serializer:json" json:"address"`
	Image    string    `gorm:"type:text;not null" json:"image"`
	Password string    `gorm:"size:255;not null" json:"-"`
	Date     time.Time `gorm:"not null" json:"date"`
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Person) Base() *Person { return p }

// Personnel is implemented by pointers to each kind.
type Personnel interface {
	Base() *Person
	Kind() Kind
	Role() string
	SetRole(value string)
}

type Student struct {
	Person
	Level string `gorm:"size:50;not null" json:"level"`
}

func (*Student) Kind() Kind { return KindStudent }
func (s *Student) Role() string { return s.Level }
func (s *Student) SetRole(v string) { s.Level = v }

type Teacher struct {
	Person
	Position string `gorm:"size:100;not null" json:"position"`
}

func (*Teacher) Kind() Kind { return KindTeacher }
func (t *Teacher) Role() string { return t.Position }
func (t *Teacher) SetRole(v string) { t.Position = v }

type Administrator struct {
	Person
	Position string `gorm:"size:100;not null" json:"position"`
}

func (*Administrator) Kind() Kind { return KindAdministrator }
func (a *Administrator) Role() string { return a.Position }
func (a *Administrator) SetRole(v string) { a.Position = v }

type Utility struct {
	Person
	Position string `gorm:"size:100;not null" json:"position"`
}

func (*Utility) Kind() Kind { return KindUtility }
func (u *Utility) Role() string { return u.Position }
func (u *Utility) SetRole(v string) { u.Position = v }

// Record lists the concrete personnel kinds usable with generic code.
type Record interface {
	Student | Teacher | Administrator | Utility
}

// AsPersonnel exposes the shared accessors of a concrete record.
func AsPersonnel[T Record](rec *T) Personnel {
	return any(rec).(Personnel)
}

// KindOf returns the kind of T without needing a value.
func KindOf[T Record]() Kind {
	return AsPersonnel(new(T)).Kind()
}
