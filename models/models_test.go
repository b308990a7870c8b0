package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinatesValidate(t *testing.T) {
	tests := []struct {
		name    string
		coords  Coordinates
		wantErr bool
	}{
		{name: "valid", coords: Coordinates{Lat: 50.45, Lon: 30.52}, wantErr: false},
		{name: "zero is valid", coords: Coordinates{Lat: 0, Lon: 0}, wantErr: false},
		{name: "boundary values", coords: Coordinates{Lat: 90, Lon: -180}, wantErr: false},
		{name: "latitude too high", coords: Coordinates{Lat: 90.1, Lon: 0}, wantErr: true},
		{name: "latitude too low", coords: Coordinates{Lat: -90.1, Lon: 0}, wantErr: true},
		{name: "longitude too high", coords: Coordinates{Lat: 0, Lon: 180.1}, wantErr: true},
		{name: "longitude too low", coords: Coordinates{Lat: 0, Lon: -180.1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coords.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, tt.coords.Valid())
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.coords.Valid())
			}
		})
	}
}
