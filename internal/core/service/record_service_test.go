package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/teamsite/content-api/internal/core/domain"
	"github.com/teamsite/content-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubRecordRepo struct {
	byKind    map[domain.Kind]map[string]*domain.Record
	nextID    int
	upsertErr error // if set, Upsert returns this error
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{
		byKind: map[domain.Kind]map[string]*domain.Record{
			domain.KindMember:  {},
			domain.KindProject: {},
		},
	}
}

func (r *stubRecordRepo) List(_ context.Context, kind domain.Kind, locale string) ([]*domain.Record, error) {
	var out []*domain.Record
	for _, rec := range r.byKind[kind] {
		if locale != "" && rec.Locale != locale {
			continue
		}
		clone := *rec
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRecordRepo) Get(_ context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	rec, ok := r.byKind[kind][id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *stubRecordRepo) Upsert(_ context.Context, kind domain.Kind, write domain.RecordWrite) (*domain.Record, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	if write.Op == domain.OpCreate {
		r.nextID++
		rec := &domain.Record{
			ID:          fmt.Sprintf("id-%d", r.nextID),
			Name:        write.Fields.Name,
			Description: write.Fields.Description,
			Locale:      write.Fields.Locale,
		}
		r.byKind[kind][rec.ID] = rec
		clone := *rec
		return &clone, nil
	}

	rec, ok := r.byKind[kind][write.ID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	if write.Fields.Name != "" {
		rec.Name = write.Fields.Name
	}
	if write.Fields.Description != "" {
		rec.Description = write.Fields.Description
	}
	if write.Fields.Locale != "" {
		rec.Locale = write.Fields.Locale
	}
	clone := *rec
	return &clone, nil
}

func (r *stubRecordRepo) Delete(_ context.Context, kind domain.Kind, id string) error {
	if _, ok := r.byKind[kind][id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.byKind[kind], id)
	return nil
}

func (r *stubRecordRepo) ListIDs(_ context.Context, kind domain.Kind) ([]string, error) {
	var ids []string
	for id := range r.byKind[kind] {
		ids = append(ids, id)
	}
	return ids, nil
}

type stubLocaleRepo struct {
	languages map[string]struct{}
}

func newStubLocaleRepo(languages ...string) *stubLocaleRepo {
	r := &stubLocaleRepo{languages: make(map[string]struct{})}
	for _, l := range languages {
		r.languages[l] = struct{}{}
	}
	return r
}

func (r *stubLocaleRepo) List(_ context.Context) ([]domain.Locale, error) {
	var out []domain.Locale
	for l := range r.languages {
		out = append(out, domain.Locale{Language: l})
	}
	return out, nil
}

func (r *stubLocaleRepo) Exists(_ context.Context, language string) (bool, error) {
	_, ok := r.languages[language]
	return ok, nil
}

func (r *stubLocaleRepo) Create(_ context.Context, language string) error {
	r.languages[language] = struct{}{}
	return nil
}

func (r *stubLocaleRepo) Delete(_ context.Context, language string) error {
	if _, ok := r.languages[language]; !ok {
		return domain.ErrLocaleNotFound
	}
	delete(r.languages, language)
	return nil
}

type stubAssetStore struct {
	files    map[string][]byte
	writeErr error // if set, Write returns this error
}

func newStubAssetStore() *stubAssetStore {
	return &stubAssetStore{files: make(map[string][]byte)}
}

func (s *stubAssetStore) Write(id string, data []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.files[id+".webp"] = data
	return nil
}

func (s *stubAssetStore) Remove(id string) error {
	for name := range s.files {
		if domain.AssetOwner(name) == id {
			delete(s.files, name)
		}
	}
	return nil
}

func (s *stubAssetStore) Exists(id string) bool {
	_, ok := s.files[id+".webp"]
	return ok
}

func (s *stubAssetStore) List() ([]string, error) {
	var names []string
	for name := range s.files {
		names = append(names, name)
	}
	return names, nil
}

func (s *stubAssetStore) FilePath(string) (string, error) {
	return "", errors.New("not backed by disk")
}

type stubCodec struct {
	err error // if set, Decode fails
}

func (c *stubCodec) Decode(dataURI string) (*ports.DecodedImage, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &ports.DecodedImage{Data: []byte(dataURI), SourceFormat: "png"}, nil
}

type stubTrigger struct {
	kicks int
}

func (t *stubTrigger) Kick() { t.kicks++ }

// ---------------------------------------------------------------------------

type fixture struct {
	service *RecordService
	repo    *stubRecordRepo
	assets  *stubAssetStore
	codec   *stubCodec
	trigger *stubTrigger
}

func newFixture() *fixture {
	repo := newStubRecordRepo()
	assets := newStubAssetStore()
	codec := &stubCodec{}
	trigger := &stubTrigger{}
	svc := NewRecordService(
		NewAuthGate("secret"),
		repo,
		newStubLocaleRepo("ru", "en"),
		assets,
		codec,
		zerolog.Nop(),
	).WithReconcileTrigger(trigger)
	return &fixture{service: svc, repo: repo, assets: assets, codec: codec, trigger: trigger}
}

func validCreate() ports.SaveRecordInput {
	return ports.SaveRecordInput{
		Token:       "secret",
		Kind:        domain.KindMember,
		Locale:      "ru",
		Name:        "Иванов",
		Description: "Капитан",
		Image:       "data:image/png;base64,xxxx",
	}
}

func TestSave_CreateAssignsIDAndPersists(t *testing.T) {
	f := newFixture()

	result, err := f.service.Save(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if result.Message != "Record created" {
		t.Fatalf("message = %q", result.Message)
	}
	if result.Record.ID == "" {
		t.Fatalf("created record has empty id")
	}
	if !result.Record.HasImage {
		t.Fatalf("HasImage false after image write")
	}

	stored, err := f.service.GetRecord(context.Background(), domain.KindMember, result.Record.ID)
	if err != nil {
		t.Fatalf("get after create: %v", err)
	}
	if stored.Name != "Иванов" || stored.Description != "Капитан" || stored.Locale != "ru" {
		t.Fatalf("stored fields mismatch: %+v", stored)
	}
	if f.trigger.kicks == 0 {
		t.Fatalf("reconcile not kicked after write")
	}
}

func TestSave_CreateMissingFieldOrder(t *testing.T) {
	f := newFixture()

	cases := []struct {
		mutate func(*ports.SaveRecordInput)
		field  string
	}{
		{func(in *ports.SaveRecordInput) { in.Name = "" }, "name"},
		{func(in *ports.SaveRecordInput) { in.Description = "" }, "description"},
		{func(in *ports.SaveRecordInput) { in.Locale = "" }, "locale"},
		{func(in *ports.SaveRecordInput) { in.Image = "" }, "image"},
		// Multiple fields missing: the first in order wins.
		{func(in *ports.SaveRecordInput) { in.Description, in.Image = "", "" }, "description"},
	}

	for _, tc := range cases {
		input := validCreate()
		tc.mutate(&input)

		_, err := f.service.Save(context.Background(), input)
		var missing *domain.MissingFieldError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingFieldError, got %v", err)
		}
		if missing.Field != tc.field {
			t.Fatalf("missing field = %q, want %q", missing.Field, tc.field)
		}
	}

	if len(f.repo.byKind[domain.KindMember]) != 0 {
		t.Fatalf("validation failure must not persist records")
	}
}

func TestSave_InvalidTokenNoMutation(t *testing.T) {
	f := newFixture()

	for _, token := range []string{"", "wrong"} {
		input := validCreate()
		input.Token = token

		_, err := f.service.Save(context.Background(), input)
		if !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}

	if len(f.repo.byKind[domain.KindMember]) != 0 || len(f.assets.files) != 0 {
		t.Fatalf("rejected request mutated a store")
	}
}

func TestSave_UpdateIsPartial(t *testing.T) {
	f := newFixture()

	created, err := f.service.Save(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}

	// Only the description changes; other fields are omitted.
	updated, err := f.service.Save(context.Background(), ports.SaveRecordInput{
		Token:       "secret",
		Kind:        domain.KindMember,
		ID:          created.Record.ID,
		Description: "Тренер",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Message != "Record saved" {
		t.Fatalf("message = %q", updated.Message)
	}
	if updated.Record.Name != "Иванов" {
		t.Fatalf("omitted name was overwritten: %q", updated.Record.Name)
	}
	if updated.Record.Description != "Тренер" {
		t.Fatalf("description not updated: %q", updated.Record.Description)
	}
}

func TestSave_UpdateUnknownID(t *testing.T) {
	f := newFixture()

	_, err := f.service.Save(context.Background(), ports.SaveRecordInput{
		Token: "secret",
		Kind:  domain.KindMember,
		ID:    "ghost",
		Name:  "x",
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestSave_UnknownLocale(t *testing.T) {
	f := newFixture()

	input := validCreate()
	input.Locale = "xx"

	_, err := f.service.Save(context.Background(), input)
	if !errors.Is(err, domain.ErrLocaleNotFound) {
		t.Fatalf("expected ErrLocaleNotFound, got %v", err)
	}
}

func TestSave_ImageDecodeFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.codec.err = domain.ErrInvalidImage

	result, err := f.service.Save(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("save with broken image must still succeed, got %v", err)
	}
	if result.Record.HasImage {
		t.Fatalf("HasImage true although image step failed")
	}
	if len(f.assets.files) != 0 {
		t.Fatalf("asset written despite decode failure")
	}
}

func TestSave_AssetWriteFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.assets.writeErr = errors.New("disk full")

	result, err := f.service.Save(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("save with failing asset store must still succeed, got %v", err)
	}
	if result.Record.HasImage {
		t.Fatalf("HasImage true although asset write failed")
	}
}

func TestSave_PersistenceErrorSkipsImageStep(t *testing.T) {
	f := newFixture()
	f.repo.upsertErr = errors.New("connection reset")

	_, err := f.service.Save(context.Background(), validCreate())
	if err == nil {
		t.Fatalf("expected persistence error")
	}
	if len(f.assets.files) != 0 {
		t.Fatalf("image step ran after persistence failure")
	}
}

func TestDelete_RemovesRecordAndAsset(t *testing.T) {
	f := newFixture()

	created, err := f.service.Save(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}
	id := created.Record.ID

	err = f.service.Delete(context.Background(), ports.DeleteRecordInput{
		Token: "secret",
		Kind:  domain.KindMember,
		ID:    id,
	})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.service.GetRecord(context.Background(), domain.KindMember, id); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound after delete, got %v", err)
	}
	if f.assets.Exists(id) {
		t.Fatalf("asset survived record deletion")
	}
}

func TestDelete_InvalidToken(t *testing.T) {
	f := newFixture()

	err := f.service.Delete(context.Background(), ports.DeleteRecordInput{
		Token: "wrong",
		Kind:  domain.KindMember,
		ID:    "id-1",
	})
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestKindsAreIndependentCollections(t *testing.T) {
	f := newFixture()

	// Same underlying id value in both kinds must not collide.
	f.repo.byKind[domain.KindMember]["shared"] = &domain.Record{ID: "shared", Name: "m", Locale: "ru"}
	f.repo.byKind[domain.KindProject]["shared"] = &domain.Record{ID: "shared", Name: "p", Locale: "ru"}

	member, err := f.service.GetRecord(context.Background(), domain.KindMember, "shared")
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	project, err := f.service.GetRecord(context.Background(), domain.KindProject, "shared")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if member.Name == project.Name {
		t.Fatalf("kinds are not independent")
	}
}
