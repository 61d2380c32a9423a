package contract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConfigError checks construction, message, and errors.As detection
// through wrapping.
func TestConfigError(t *testing.T) {
	err := NewConfigError("facet %s has only %d statements, need %d", "empathy", 2, 4)
	assert.EqualError(t, err, "configuration error: facet empathy has only 2 statements, need 4")
	assert.True(t, IsConfigError(err))
	assert.True(t, IsConfigError(fmt.Errorf("designer failed: %w", err)))
	assert.False(t, IsConfigError(fmt.Errorf("plain failure")))
}

// TestIncompleteDataError checks the missing-block message and detection.
func TestIncompleteDataError(t *testing.T) {
	err := &IncompleteDataError{SessionID: "s-42", MissingBlocks: []int{3, 7}}
	assert.EqualError(t, err, "session s-42: response set missing required blocks [3 7]")
	assert.True(t, IsIncompleteDataError(err))
	assert.True(t, IsIncompleteDataError(fmt.Errorf("scoring aborted: %w", err)))
	assert.False(t, IsIncompleteDataError(NewConfigError("unrelated")))
	assert.False(t, IsConfigError(err))
}
