package pettests

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restcontract/petstore-contract-tests/assertion"
	"github.com/restcontract/petstore-contract-tests/model"
)

func DoCreatePetTests(t *T) {
	t.Run("generated pet is echoed back", func(t *T) {
		ctx, cancel := t.Context()
		defer cancel()
		result, err := t.Pets().CreatePet(ctx, nil)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, result.Status)
		t.RequireMatch(result.RequestData, result.ResponseData)
	})

	t.Run("response conforms to pet schema", func(t *T) {
		ctx, cancel := t.Context()
		defer cancel()
		result, err := t.Pets().CreatePet(ctx, nil)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, result.Status)
		require.NoError(t, assertion.ThatBody(result.ResponseData).ConformsTo(model.PetSchema))
	})

	t.Run("pet without id is assigned one", func(t *T) {
		ctx, cancel := t.Context()
		defer cancel()
		pet := model.Pet{Name: model.String("doggie"), PhotoURLs: []string{"https://example.com/doggie.png"}, Status: model.String(model.StatusAvailable)}
		result, err := t.Pets().CreatePet(ctx, &pet)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, result.Status)
		require.NotNil(t, result.Pet)
		assert.NotNil(t, result.Pet.ID)
		t.RequireMatch(pet, result.ResponseData)
	})
}

func DoReadPetTests(t *T) {
	t.Run("created pet can be read back", func(t *T) {
		ctx, cancel := t.Context()
		defer cancel()
		result, err := t.Pets().CreateAndGetPet(ctx, nil)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, result.Create.Status)
		require.Equal(t, http.StatusOK, result.Get.Status)
		t.RequireMatch(result.Create.RequestData, result.Get.ResponseData)
	})

	t.Run("unknown pet is not found", func(t *T) {
		ctx, cancel := t.Context()
		defer cancel()
		created, err := t.Pets().CreatePet(ctx, nil)
		require.NoError(t, err)
		require.NotNil(t, created.Pet)
		require.NotNil(t, created.Pet.ID)
		_, err = t.Pets().DeletePet(ctx, *created.Pet.ID)
		require.NoError(t, err)

		result, err := t.Pets().GetPetByID(ctx, *created.Pet.ID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, result.Status)
		assert.Nil(t, result.Pet)
	})
}

func DoUpdatePetTests(t *T) {
	t.Run("name and status are replaced", func(t *T) {
		ctx, cancel := t.Context()
		defer cancel()
		created, err := t.Pets().CreatePet(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, created.Status)
		require.NotNil(t, created.Pet)

		updated := *created.Pet
		updated.Name = model.String("UpdatedName")
		updated.Status = model.String(model.StatusSold)
		result, err := t.Pets().UpdatePet(ctx, updated)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, result.Status)
		t.RequireMatch(result.RequestData, result.ResponseData)
	})
}

func DoDeletePetTests(t *T) {
	t.Run("created pet can be deleted", func(t *T) {
		ctx, cancel := t.Context()
		defer cancel()
		created, err := t.Pets().CreatePet(ctx, nil)
		require.NoError(t, err)
		require.NotNil(t, created.Pet)
		require.NotNil(t, created.Pet.ID)

		result, err := t.Pets().DeletePet(ctx, *created.Pet.ID)
		require.NoError(t, err)

		// the public service sometimes answers 404 for a pet it has only just created
		assert.Contains(t, []int{http.StatusOK, http.StatusNotFound}, result.Status)
	})
}

func DoFindPetsByStatusTests(t *T) {
	for _, status := range model.AllStatuses {
		status := status
		t.Run(status, func(t *T) {
			ctx, cancel := t.Context()
			defer cancel()
			result, err := t.Pets().FindPetsByStatus(ctx, status)
			require.NoError(t, err)

			require.Equal(t, http.StatusOK, result.Status)
			for _, p := range result.Pets {
				assert.Equal(t, status, model.StringValue(p.Status), "pet %s", p.IDString())
			}
		})
	}

	t.Run("newly created pet is found", func(t *T) {
		ctx, cancel := t.Context()
		defer cancel()
		pet := model.Pet{Name: model.String("findme"), PhotoURLs: []string{"https://example.com/findme.png"}, Status: model.String(model.StatusPending)}
		created, err := t.Pets().CreatePet(ctx, &pet)
		require.NoError(t, err)
		require.NotNil(t, created.Pet)
		require.NotNil(t, created.Pet.ID)

		result, err := t.Pets().FindPetsByStatus(ctx, model.StatusPending)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, result.Status)

		var ids []int64
		for _, p := range result.Pets {
			if p.ID != nil {
				ids = append(ids, *p.ID)
			}
		}
		assert.Contains(t, ids, *created.Pet.ID)
	})
}
