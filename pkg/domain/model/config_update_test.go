package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/herald/pkg/domain/model"
)

func ptr(s string) *string {
	return &s
}

func TestConfigUpdateDescribe(t *testing.T) {
	u := &model.ConfigUpdate{Port: ptr("10000"), LogLevel: ptr("debug")}
	gt.Value(t, u.Describe()).Equal("Configuration updated: port=10000, prefix=unset, logLevel=debug")

	empty := &model.ConfigUpdate{}
	gt.Value(t, empty.Describe()).Equal("Configuration updated: port=unset, prefix=unset, logLevel=unset")
}

func TestConfigUpdateValidate(t *testing.T) {
	testCases := []struct {
		name    string
		update  model.ConfigUpdate
		wantErr bool
	}{
		{name: "empty update", update: model.ConfigUpdate{}},
		{name: "all fields", update: model.ConfigUpdate{Port: ptr("8080"), Prefix: ptr("!"), LogLevel: ptr("warn")}},
		{name: "unknown log level", update: model.ConfigUpdate{LogLevel: ptr("verbose")}, wantErr: true},
		{name: "port out of range", update: model.ConfigUpdate{Port: ptr("70000")}, wantErr: true},
		{name: "port not numeric", update: model.ConfigUpdate{Port: ptr("http")}, wantErr: true},
		{name: "prefix too long", update: model.ConfigUpdate{Prefix: ptr("!!!!!!")}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.update.Validate()
			if tc.wantErr {
				gt.Value(t, err).NotNil()
			} else {
				gt.NoError(t, err)
			}
		})
	}
}
