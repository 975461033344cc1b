package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchivedState(t *testing.T) {
	tests := []struct {
		estado   string
		expected string
		ok       bool
	}{
		{EstadoAprobado, EstadoArchivadoAprobado, true},
		{EstadoRechazado, EstadoArchivadoRechazado, true},
		{EstadoPendiente, "", false},
		{EstadoArchivadoAprobado, "", false},
		{EstadoCreadoContabilidad, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.estado, func(t *testing.T) {
			got, ok := ArchivedState(tt.estado)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRestoredState(t *testing.T) {
	tests := []struct {
		estado   string
		expected string
		ok       bool
	}{
		{EstadoArchivadoAprobado, EstadoAprobado, true},
		{EstadoArchivadoRechazado, EstadoRechazado, true},
		{EstadoAprobado, "", false},
		{EstadoPendiente, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.estado, func(t *testing.T) {
			got, ok := RestoredState(tt.estado)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestArchiveRestoreRoundTrip(t *testing.T) {
	for _, estado := range []string{EstadoAprobado, EstadoRechazado} {
		archived, ok := ArchivedState(estado)
		assert.True(t, ok)

		restored, ok := RestoredState(archived)
		assert.True(t, ok)
		assert.Equal(t, estado, restored)
	}
}
