package utils

import (
	"encoding/json"
	"time"
)

// RFC3339Date сериализует время в JSON в формате RFC3339 (UTC).
type RFC3339Date struct {
	time.Time
}

// NewRFC3339Date оборачивает время.
func NewRFC3339Date(t time.Time) RFC3339Date {
	return RFC3339Date{Time: t}
}

// NewNullableRFC3339Date оборачивает необязательное время, nil остается nil.
func NewNullableRFC3339Date(t *time.Time) *RFC3339Date {
	if t == nil {
		return nil
	}
	return &RFC3339Date{Time: *t}
}

func (d RFC3339Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

func (d *RFC3339Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
