package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/gift"
	"github.com/weddingledger/planner/internal/importer"
)

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contributors := importer.NewMockContributors(ctrl)
	gifts := importer.NewMockGifts(ctrl)

	contributors.EXPECT().List(gomock.Any(), "ws1").Return([]*contributor.Contributor{{ID: "c1", Name: "Tia Maria"}}, nil)
	contributors.EXPECT().Create(gomock.Any(), "ws1", contributor.Params{Name: "Rui"}).
		Return(&contributor.Contributor{ID: "c2", Name: "Rui"}, nil)

	var got []string

	gifts.EXPECT().AddToContributor(gomock.Any(), "ws1", gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, _ string, contributorID string, p gift.Params, _ []gift.AllocationParams) (*gift.Gift, []*gift.Allocation, error) {
			got = append(got, contributorID)
			return &gift.Gift{ID: "g" + contributorID, ContributorID: contributorID, Amount: p.Amount}, nil, nil
		}).Times(3)

	csv := "name;amount\ntia maria;100\nRui;50\nrui;25\nnobody;x\n"

	res, err := importer.NewService(contributors, gifts).Import(context.Background(), "ws1", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"c1", "c2", "c2"}, got)
	assert.Len(t, res.Gifts, 3)
	require.Len(t, res.NewContributors, 1)
	assert.Equal(t, "Rui", res.NewContributors[0].Name)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 5, res.Skipped[0].Line)
}

func TestService_Import_GiftFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	contributors := importer.NewMockContributors(ctrl)
	gifts := importer.NewMockGifts(ctrl)

	contributors.EXPECT().List(gomock.Any(), "ws1").Return([]*contributor.Contributor{{ID: "c1", Name: "Ana"}}, nil)
	gifts.EXPECT().AddToContributor(gomock.Any(), "ws1", "c1", gomock.Any(), gomock.Any()).
		Return(nil, nil, errors.New("unavailable"))

	_, err := importer.NewService(contributors, gifts).Import(context.Background(), "ws1", strings.NewReader("Ana;10\n"))
	assert.ErrorContains(t, err, "line 1: adding gift")
}
