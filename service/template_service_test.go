package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabloide-mp/authz"
	"tabloide-mp/models"
)

func TestTemplateService_CreateValidates(t *testing.T) {
	f := newPlacementFixture()
	s := NewTemplateService(f.templates, f.service, NewAssetStore(t.TempDir(), nil))

	tmpl, err := s.Create(context.Background(), authz.System, models.TemplateRequest{
		Name: "  Ofertas  ", Columns: 2, Rows: 3, PrimaryColor: "#ffcc00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ofertas", tmpl.Name)
	assert.Equal(t, "#FFCC00", tmpl.PrimaryColor)
	assert.Equal(t, "#FFCC00", tmpl.AlternateOrPrimary())

	_, err = s.Create(context.Background(), authz.System, models.TemplateRequest{
		Name: "Ruim", Columns: 0, Rows: 3, PrimaryColor: "#ffcc00",
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "columns", verr.Field)
}

func TestTemplateService_UpdateRejectsShrink(t *testing.T) {
	ctx := context.Background()
	f := newPlacementFixture()
	s := NewTemplateService(f.templates, f.service, NewAssetStore(t.TempDir(), nil))

	_, err := f.service.Assign(ctx, authz.System, 1, 1, 10)
	require.NoError(t, err)

	_, err = s.Update(ctx, authz.System, 1, models.TemplateRequest{Name: "Semana", Columns: 3, Rows: 3, PrimaryColor: "#FFEEAA"})
	assert.ErrorIs(t, err, models.ErrPositionOutOfRange)

	updated, err := s.Update(ctx, authz.System, 1, models.TemplateRequest{Name: "Semana", Columns: 5, Rows: 2, PrimaryColor: "#FFEEAA"})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Capacity())
}

func TestTemplateService_Detail(t *testing.T) {
	ctx := context.Background()
	f := newPlacementFixture()
	s := NewTemplateService(f.templates, f.service, NewAssetStore(t.TempDir(), nil))

	_, err := f.service.Assign(ctx, authz.System, 1, 3, 2)
	require.NoError(t, err)

	detail, err := s.Detail(ctx, authz.System, 1)
	require.NoError(t, err)
	require.Len(t, detail.Grid, 12)
	assert.Len(t, detail.Placements, 1)
	assert.Equal(t, 1, detail.Grid[0].Position)
	assert.Nil(t, detail.Grid[0].Item)
	require.NotNil(t, detail.Grid[1].Item)
	assert.Equal(t, "C3", detail.Grid[1].Item.Code)
}

func TestTemplateService_SetBackground(t *testing.T) {
	ctx := context.Background()
	f := newPlacementFixture()
	assets := NewAssetStore(t.TempDir(), nil)
	s := NewTemplateService(f.templates, f.service, assets)

	src := imaging.New(40, 60, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, src, imaging.PNG))

	tmpl, err := s.SetBackground(ctx, authz.System, 1, buf.Bytes())
	require.NoError(t, err)
	require.NotNil(t, tmpl.BackgroundRef)
	assert.Equal(t, "backgrounds/template_1.jpg", *tmpl.BackgroundRef)

	img, err := assets.LoadImage(ctx, *tmpl.BackgroundRef)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 60), img.Bounds())

	_, err = s.SetBackground(ctx, authz.System, 1, []byte("not an image"))
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "background", verr.Field)
}
