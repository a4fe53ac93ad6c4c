package stamprequest_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/stretchr/testify/assert"
)

func TestStatus_Next(t *testing.T) {
	tests := []struct {
		from    stamprequest.Status
		action  stamprequest.Action
		want    stamprequest.Status
		wantErr bool
	}{
		{stamprequest.StatusPending, stamprequest.ActionApprove, stamprequest.StatusApproved, false},
		{stamprequest.StatusPending, stamprequest.ActionReject, stamprequest.StatusRejected, false},
		{stamprequest.StatusPending, stamprequest.ActionCancel, stamprequest.StatusCancelled, false},
		{stamprequest.StatusApproved, stamprequest.ActionApprove, "", true},
		{stamprequest.StatusApproved, stamprequest.ActionCancel, "", true},
		{stamprequest.StatusRejected, stamprequest.ActionApprove, "", true},
		{stamprequest.StatusCancelled, stamprequest.ActionReject, "", true},
		{stamprequest.Status("NEW"), stamprequest.ActionApprove, "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			got, err := tt.from.Next(tt.action)
			if tt.wantErr {
				assert.ErrorIs(t, err, stamprequest.ErrInvalidTransition)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, stamprequest.StatusPending.IsTerminal())
	assert.True(t, stamprequest.StatusApproved.IsTerminal())
	assert.True(t, stamprequest.StatusRejected.IsTerminal())
	assert.True(t, stamprequest.StatusCancelled.IsTerminal())
	assert.False(t, stamprequest.Status("NEW").IsTerminal())
	assert.False(t, stamprequest.Status("NEW").IsValid())
}

func TestAction_Source(t *testing.T) {
	for _, a := range []stamprequest.Action{stamprequest.ActionApprove, stamprequest.ActionReject, stamprequest.ActionCancel} {
		assert.Equal(t, stamprequest.StatusPending, a.Source())
	}
	assert.Equal(t, stamprequest.Status(""), stamprequest.Action("resubmit").Source())
}

func TestResources_AddDeduplicates(t *testing.T) {
	march := stamprequest.MonthOf(time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC))

	var rs stamprequest.Resources
	rs = rs.Add(stamprequest.Resource{Kind: stamprequest.ResourceMonthlyStats, EmployeeID: "emp-1", Period: march})
	rs = rs.Add(stamprequest.Resource{Kind: stamprequest.ResourceMonthlyStats, EmployeeID: "emp-1", Period: march})
	rs = rs.Add(stamprequest.Resource{Kind: stamprequest.ResourceStampRequest, ID: "req-1"})

	assert.Len(t, rs, 2)
	assert.Len(t, rs.Of(stamprequest.ResourceMonthlyStats), 1)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), march)
}
