package main

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillcast/internal/data"
	"github.com/udisondev/skillcast/internal/model"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	return &buf
}

func TestLogSpawner_HitEffect(t *testing.T) {
	catalog, err := data.DefaultCatalog(20 * time.Millisecond)
	require.NoError(t, err)

	tests := []struct {
		skill      string
		wantKind   string
		wantEffect string
	}{
		{"ground_slam", "kind=enemy", "effect=dust_burst"},
		{"fireball", "kind=player", ""},
	}
	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			buf := captureDefault(t)
			def, err := catalog.Get(tt.skill)
			require.NoError(t, err)

			logSpawner{actorID: 7}.Spawn(def, *model.NewTransform(model.Vector3{}))

			out := buf.String()
			assert.Len(t, logLines(out, `msg="skill object spawned"`, "actor=7", tt.wantKind), 1)
			if tt.wantEffect == "" {
				assert.Empty(t, logLines(out, "hit effect spawned"))
			} else {
				assert.Len(t, logLines(out, `msg="hit effect spawned"`, tt.wantEffect), 1)
			}
		})
	}
}
