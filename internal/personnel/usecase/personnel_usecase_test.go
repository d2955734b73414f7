package usecase

import (
	"fmt"
	"sort"
	"testing"
	"time"

	personneldomain "genprd-backend/internal/personnel/domain"
	personneldto "genprd-backend/internal/personnel/dto"
	"genprd-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPersonnelRepo struct {
	people map[string]*personneldomain.Personnel
	nextID int
}

func newMemoryPersonnelRepo() *memoryPersonnelRepo {
	return &memoryPersonnelRepo{people: map[string]*personneldomain.Personnel{}}
}

func (r *memoryPersonnelRepo) Create(p *personneldomain.Personnel) error {
	if p.ID == "" {
		r.nextID++
		p.ID = fmt.Sprintf("person-%d", r.nextID)
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	copied := *p
	r.people[p.ID] = &copied
	return nil
}

func (r *memoryPersonnelRepo) FindByID(userID, id string) (*personneldomain.Personnel, error) {
	p, ok := r.people[id]
	if !ok || p.UserID != userID {
		return nil, apperror.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memoryPersonnelRepo) FindAllByUser(userID string) ([]*personneldomain.Personnel, error) {
	var out []*personneldomain.Personnel
	for _, p := range r.people {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryPersonnelRepo) Update(p *personneldomain.Personnel) error {
	if _, ok := r.people[p.ID]; !ok {
		return apperror.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	copied := *p
	r.people[p.ID] = &copied
	return nil
}

func (r *memoryPersonnelRepo) Delete(userID, id string) error {
	p, ok := r.people[id]
	if !ok || p.UserID != userID {
		return apperror.ErrNotFound
	}
	delete(r.people, id)
	return nil
}

func (r *memoryPersonnelRepo) CountByUser(userID string) (int64, error) {
	var count int64
	for _, p := range r.people {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memoryPersonnelRepo) FindNamesByIDs(userID string, ids []string) (map[string]string, error) {
	names := map[string]string{}
	for _, id := range ids {
		if p, ok := r.people[id]; ok && p.UserID == userID {
			names[id] = p.Name
		}
	}
	return names, nil
}

func TestPersonnelCRUD(t *testing.T) {
	repo := newMemoryPersonnelRepo()
	uc := NewPersonnelUsecase(repo)

	created, err := uc.Create("u1", &personneldto.CreatePersonnelRequest{
		Name: "Alice", Role: "PM", Contact: "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	fetched, err := uc.Get("u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fetched.Name)

	role := "Engineering Manager"
	updated, err := uc.Update("u1", created.ID, &personneldto.UpdatePersonnelRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "Engineering Manager", updated.Role)
	assert.Equal(t, "Alice", updated.Name, "untouched fields survive")

	require.NoError(t, uc.Delete("u1", created.ID))
	_, err = uc.Get("u1", created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestPersonnelOwnerScoping(t *testing.T) {
	repo := newMemoryPersonnelRepo()
	uc := NewPersonnelUsecase(repo)

	created, err := uc.Create("u1", &personneldto.CreatePersonnelRequest{Name: "Alice"})
	require.NoError(t, err)

	_, err = uc.Get("u2", created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = uc.Delete("u2", created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	name := "Mallory"
	_, err = uc.Update("u2", created.ID, &personneldto.UpdatePersonnelRequest{Name: &name})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	others, err := uc.List("u2")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestPersonnelListSortedByName(t *testing.T) {
	repo := newMemoryPersonnelRepo()
	uc := NewPersonnelUsecase(repo)

	for _, name := range []string{"Charlie", "Alice", "Bob"} {
		_, err := uc.Create("u1", &personneldto.CreatePersonnelRequest{Name: name})
		require.NoError(t, err)
	}

	people, err := uc.List("u1")
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "Alice", people[0].Name)
	assert.Equal(t, "Bob", people[1].Name)
	assert.Equal(t, "Charlie", people[2].Name)
}
