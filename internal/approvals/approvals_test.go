package approvals

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"suggest", "auto-edit", "full-auto"} {
		mode, err := ParseMode(value)
		require.NoError(t, err)
		require.Equal(t, Mode(value), mode)
	}

	_, err := ParseMode("yolo")
	require.Error(t, err)
}

func TestPolicyAutoApproval(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mode        Mode
		editAuto    bool
		commandAuto bool
	}{
		{ModeSuggest, false, false},
		{ModeAutoEdit, true, false},
		{ModeFullAuto, true, true},
	}

	for _, tc := range cases {
		policy := NewPolicy(tc.mode)
		require.Equal(t, tc.editAuto, policy.AutoApprovesEdit(), "mode %s", tc.mode)
		require.Equal(t, tc.commandAuto, policy.AutoApprovesCommand(), "mode %s", tc.mode)
	}
}

func TestReviewCommand(t *testing.T) {
	t.Parallel()

	edit := &PatchCommand{Filename: "a.py", Patch: "*** Begin Patch\n*** End Patch\n"}

	require.True(t, NewPolicy(ModeAutoEdit).ReviewCommand(nil, edit).Approved)
	require.False(t, NewPolicy(ModeAutoEdit).ReviewCommand([]string{"rm", "-rf"}, nil).Approved)
	require.True(t, NewPolicy(ModeFullAuto).ReviewCommand([]string{"ls"}, nil).Approved)

	review := NewPolicy(ModeSuggest).ReviewCommand(nil, edit)
	require.False(t, review.Approved)
	require.NotEmpty(t, review.Message)
}

func TestNewPolicyDefaultsToSuggest(t *testing.T) {
	t.Parallel()

	require.Equal(t, ModeSuggest, NewPolicy("").Mode())
}
