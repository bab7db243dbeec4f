package services_test

import (
	"encoding/json"
	"testing"

	repo "github.com/deepakMaj/Task-Manager-API/internal/repository"
	"github.com/stretchr/testify/require"
)

func rawFields(t *testing.T, m map[string]any) map[string]json.RawMessage {
	t.Helper()
	b, err := json.Marshal(m)
	require.NoError(t, err)
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func listAll() repo.TaskListOptions { return repo.TaskListOptions{} }
