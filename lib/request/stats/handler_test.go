package requeststats

import (
	"context"
	"testing"

	"attendance-backend/models"
	requestapimodels "attendance-backend/models/api/request"

	"github.com/stretchr/testify/require"
)

type fakeRequests struct {
	list []requestapimodels.RequestView
}

func (f fakeRequests) SubmitSignup(ctx context.Context, data requestapimodels.SignupData) (string, error) {
	return "", nil
}

func (f fakeRequests) SubmitWorkModeChange(ctx context.Context, data requestapimodels.WorkModeChangeData) (string, error) {
	return "", nil
}

func (f fakeRequests) GetByID(ctx context.Context, id string) (requestapimodels.RequestView, error) {
	return requestapimodels.RequestView{}, nil
}

func (f fakeRequests) List(ctx context.Context, filter requestapimodels.RequestFilter) ([]requestapimodels.RequestView, int64, error) {
	result := make([]requestapimodels.RequestView, 0, len(f.list))
	for _, item := range f.list {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Kind != "" && item.Kind != filter.Kind {
			continue
		}
		result = append(result, item)
	}
	return result, int64(len(result)), nil
}

func (f fakeRequests) PendingCount(ctx context.Context) (int, error) {
	return 0, nil
}

func (f fakeRequests) Approve(ctx context.Context, id, actor string) error {
	return nil
}

func (f fakeRequests) Reject(ctx context.Context, id, actor, reason string) error {
	return nil
}

func testViews() []requestapimodels.RequestView {
	return []requestapimodels.RequestView{
		{ID: "1", Kind: models.RequestKindAccountSignup, Status: models.RequestStatusPending},
		{ID: "2", Kind: models.RequestKindAccountSignup, Status: models.RequestStatusApproved},
		{ID: "3", Kind: models.RequestKindAccountSignup, Status: models.RequestStatusRejected},
		{ID: "4", Kind: models.RequestKindWorkModeChange, Status: models.RequestStatusPending, RequestedMode: models.WorkModeFullyRemote},
		{ID: "5", Kind: models.RequestKindWorkModeChange, Status: models.RequestStatusApproved, RequestedMode: models.WorkModeSemiRemote},
		{ID: "6", Kind: models.RequestKindWorkModeChange, Status: models.RequestStatusApproved, RequestedMode: models.WorkModeFullyRemote},
	}
}

func TestStats(t *testing.T) {
	ctx := context.TODO()
	handler := impl{requests: fakeRequests{list: testViews()}}

	t.Run(`status counts`, func(t *testing.T) {
		stats, err := handler.StatusStats(ctx)
		require.Nil(t, err)
		require.Equal(t, 6, stats.Total)
		require.Equal(t, 2, stats.Pending)
		require.Equal(t, 3, stats.Approved)
		require.Equal(t, 1, stats.Rejected)
	})

	t.Run(`requested mode distribution`, func(t *testing.T) {
		stats, err := handler.WorkModeStats(ctx)
		require.Nil(t, err)
		require.Equal(t, 3, stats.Total)
		require.Equal(t, 0, stats.InOffice)
		require.Equal(t, 1, stats.SemiRemote)
		require.Equal(t, 2, stats.FullyRemote)
	})

	t.Run(`pending by kind`, func(t *testing.T) {
		list, err := handler.PendingByKind(ctx, models.RequestKindWorkModeChange)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "4", list[0].ID)
	})
}
