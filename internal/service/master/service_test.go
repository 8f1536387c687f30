package master

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/okehris/hris-backend-go/internal/config"
	"github.com/okehris/hris-backend-go/internal/domain/master/branch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBranchRepo struct {
	branches  map[string]branch.Branch
	seq       int
	codeTaken func(code string) bool
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{branches: map[string]branch.Branch{}}
}

func (r *fakeBranchRepo) Create(_ context.Context, b branch.Branch) (branch.Branch, error) {
	r.seq++
	b.ID = fmt.Sprintf("branch-%d", r.seq)
	r.branches[b.ID] = b
	return b, nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id string) (branch.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (r *fakeBranchRepo) List(_ context.Context) ([]branch.Branch, error) {
	var out []branch.Branch
	for _, b := range r.branches {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBranchRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	if r.codeTaken != nil && r.codeTaken(code) {
		return true, nil
	}
	for _, b := range r.branches {
		if b.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func testCodeConfig() config.BranchCodeConfig {
	return config.BranchCodeConfig{Prefix: "OKE", Length: 6}
}

func TestBranchCreateGeneratesCode(t *testing.T) {
	repo := newFakeBranchRepo()
	svc := NewBranchService(repo, testCodeConfig())

	resp, err := svc.Create(context.Background(), branch.CreateBranchRequest{
		Name:      "Jakarta HQ",
		Latitude:  -6.175392,
		Longitude: 106.827153,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Code, "OKE"))
	assert.Len(t, resp.Code, 6)
	assert.True(t, resp.IsActive)

	// Generated codes are unique across branches.
	resp2, err := svc.Create(context.Background(), branch.CreateBranchRequest{
		Name:      "Bandung Office",
		Latitude:  -6.914744,
		Longitude: 107.609810,
	})
	require.NoError(t, err)
	assert.NotEqual(t, resp.Code, resp2.Code)
}

func TestBranchCreateExhaustedCodeSpace(t *testing.T) {
	repo := newFakeBranchRepo()
	repo.codeTaken = func(string) bool { return true }
	svc := NewBranchService(repo, testCodeConfig())

	_, err := svc.Create(context.Background(), branch.CreateBranchRequest{
		Name:      "Jakarta HQ",
		Latitude:  -6.175392,
		Longitude: 106.827153,
	})
	assert.ErrorIs(t, err, branch.ErrCodeGenerationFailed)
}

func TestBranchCreateValidation(t *testing.T) {
	svc := NewBranchService(newFakeBranchRepo(), testCodeConfig())

	tests := []struct {
		name string
		req  branch.CreateBranchRequest
	}{
		{"missing name", branch.CreateBranchRequest{Latitude: -6.2, Longitude: 106.8}},
		{"latitude out of range", branch.CreateBranchRequest{Name: "X", Latitude: 91, Longitude: 106.8}},
		{"longitude out of range", branch.CreateBranchRequest{Name: "X", Latitude: -6.2, Longitude: 181}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}

func TestBranchGetAndList(t *testing.T) {
	repo := newFakeBranchRepo()
	svc := NewBranchService(repo, testCodeConfig())

	created, err := svc.Create(context.Background(), branch.CreateBranchRequest{
		Name:      "Jakarta HQ",
		Latitude:  -6.175392,
		Longitude: 106.827153,
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Code, got.Code)

	_, err = svc.Get(context.Background(), "branch-missing")
	assert.ErrorIs(t, err, branch.ErrBranchNotFound)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
