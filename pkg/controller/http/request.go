package http

import (
	"bytes"
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/herald/pkg/domain/model"
)

// maxMessageLength is Discord's limit for a message body
const maxMessageLength = 2000

type dmRequest struct {
	RoleID  string `json:"roleId"`
	Message string `json:"message"`
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return goerr.New("cannot be blank")
	}
	return nil
}

// hasRequired reports whether both fields carry non-blank text
func (r *dmRequest) hasRequired() bool {
	return notBlank(r.RoleID) == nil && notBlank(r.Message) == nil
}

func (r *dmRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RoleID, validation.By(notBlank), validation.Length(1, 32)),
		validation.Field(&r.Message, validation.By(notBlank), validation.RuneLength(1, maxMessageLength)),
	)
}

// optionalString accepts a JSON string or number. The dashboard sends the
// port as either.
type optionalString struct {
	value *string
}

func (s *optionalString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		s.value = nil
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.value = &str
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return goerr.Wrap(err, "must be a string or number")
	}
	v := num.String()
	s.value = &v
	return nil
}

type configRequest struct {
	Port     optionalString `json:"port"`
	Prefix   optionalString `json:"prefix"`
	LogLevel optionalString `json:"logLevel"`
}

func (r *configRequest) toModel() *model.ConfigUpdate {
	return &model.ConfigUpdate{
		Port:     r.Port.value,
		Prefix:   r.Prefix.value,
		LogLevel: r.LogLevel.value,
	}
}

func (r *configRequest) Validate() error {
	return r.toModel().Validate()
}
