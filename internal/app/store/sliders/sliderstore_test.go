package sliderstore_test

import (
	"errors"
	"testing"

	sliderstore "github.com/kcmcclub/clubsite/internal/app/store/sliders"
	"github.com/kcmcclub/clubsite/internal/domain/models"
	"github.com/kcmcclub/clubsite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_AssignsSequentialOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sliderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i, title := range []string{"Một", "Hai", "Ba"} {
		_, order, err := store.Create(ctx, models.SliderItem{Title: title, ImageURL: "https://img.example.com/a.jpg"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if order != i {
			t.Errorf("slide %d: order got %d, want %d", i, order, i)
		}
	}
}

func TestCreate_OrderIsCountAfterDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sliderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var ids []primitive.ObjectID
	for _, title := range []string{"Một", "Hai", "Ba"} {
		id, _, err := store.Create(ctx, models.SliderItem{Title: title, ImageURL: "https://img.example.com/a.jpg"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids = append(ids, id)
	}

	if err := store.DeleteByID(ctx, ids[1]); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}

	// Order is the pre-create count, not max+1; after a delete the next
	// slide may reuse an existing position.
	_, order, err := store.Create(ctx, models.SliderItem{Title: "Bốn", ImageURL: "https://img.example.com/b.jpg"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if order != 2 {
		t.Errorf("order after delete: got %d, want 2", order)
	}
}

func TestList_SortsAscendingByOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sliderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	fixtures.CreateSlider(ctx, "Cuối", 2)
	fixtures.CreateSlider(ctx, "Đầu", 0)
	fixtures.CreateSlider(ctx, "Giữa", 1)

	slides, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(slides))
	}
	for i, want := range []string{"Đầu", "Giữa", "Cuối"} {
		if slides[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, slides[i].Title, want)
		}
	}
}

func TestUpdate_StampsUpdatedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sliderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, _, err := store.Create(ctx, models.SliderItem{Title: "Cũ", ImageURL: "https://img.example.com/a.jpg"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, id, models.SliderItem{Title: "Mới", ImageURL: "https://img.example.com/b.jpg"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	sl, err := store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if sl.Title != "Mới" {
		t.Errorf("title: got %q, want %q", sl.Title, "Mới")
	}
	if sl.UpdatedAt == nil {
		t.Error("expected updated_at to be stamped")
	}
}

func TestUpdate_MissingDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sliderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Update(ctx, primitive.NewObjectID(), models.SliderItem{Title: "Ma"})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestDeleteByID_MissingDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sliderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.DeleteByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}
