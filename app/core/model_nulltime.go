package core

import (
	"time"

	"database/sql/driver"
	"encoding/json"
	"reflect"
	"strconv"
)

type NullTime struct {
	Time  time.Time
	Valid bool // Valid is true if Time is not NULL
}

func Now() NullTime {
	return NullTime{Time: time.Now(), Valid: true}
}

func (u *NullTime) FromString(s string) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05", s)
		if err != nil {
			t, err = time.Parse("2006-01-02 15:04:05", s)
			if err != nil {
				t, err = time.Parse("2006-01-02", s)
				if err != nil {
					i, err := strconv.Atoi(s)
					t = time.Unix(int64(i), 0)
					if err != nil {
						u.Time = t
						u.Valid = false
						return
					}
				}
			}
		}
	}
	u.Time = t
	u.Valid = true
}

func (u *NullTime) UnmarshalJSON(data []byte) error {

	s := string(data)

	// Get rid of the quotes "" around the value.
	s = s[1 : len(s)-1]

	u.FromString(s)
	return nil
}

func (u NullTime) MarshalJSON() ([]byte, error) {

	if u.Valid {
		if u.Time.String() == "0001-01-01 00:00:00 +0000 UTC" {
			return json.Marshal("")
		}
		return json.Marshal(u.Time)
	} else {
		return json.Marshal("")
	}

}

// Scan implements the Scanner interface.
func (nt *NullTime) Scan(value interface{}) error {
	nt.Time, nt.Valid = value.(time.Time)
	if !nt.Valid && value != nil {
		if reflect.TypeOf(value).String() == "[]uint8" {
			t, err := time.Parse("2006-01-02", string(value.([]uint8)))
			if err == nil {
				nt.Time = t
				nt.Valid = true
			}
		} else if reflect.TypeOf(value).String() == "*NullTime" {
			t := value.(*NullTime)
			nt.Time = t.Time
			nt.Valid = t.Valid
		}
	}

	return nil
}

// Value implements the driver Valuer interface.
func (nt NullTime) Value() (driver.Value, error) {
	if !nt.Valid {
		return nil, nil
	}
	return nt.Time, nil
}
