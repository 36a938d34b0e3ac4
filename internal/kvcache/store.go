// ABOUTME: Store interface and well-known cache keys for client state.
// ABOUTME: Implementations: Charm Cloud KV, local badger, in-memory.
package kvcache

import "encoding/json"

// Well-known cache keys. The finalize/save paths write through these.
const (
	KeyWorkoutHistory         = "workoutHistory"
	KeyUserPrograms           = "user_programs"
	KeyExerciseRecords        = "exerciseRecords"
	KeyActiveWorkout          = "activeWorkout"
	KeyPendingTrainerRequest  = "pendingTrainerRequest"
	KeyPendingSupportMessages = "pendingSupportMessages"
	KeyLastReadSupportID      = "lastReadSupportId"
)

// Store is a string-keyed blob store. Get reports a miss with ok=false
// rather than an error so callers can distinguish absence from failure.
type Store interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Remove(key string) error
	Close() error
}

// GetJSON reads key from s and unmarshals it into a T.
func GetJSON[T any](s Store, key string) (*T, bool, error) {
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false, err
	}
	return &v, true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, data)
}
