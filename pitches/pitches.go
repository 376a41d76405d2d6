package pitches

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pitchpro/db"
	"pitchpro/models"
	"pitchpro/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePitch registers a bookable venue under an organization.
func CreatePitch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")

	var pitch models.Pitch
	if err := json.NewDecoder(r.Body).Decode(&pitch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if pitch.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "missing name")
		return
	}

	pitch.ID = uuid.NewString()
	pitch.OrganizationID = orgID

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.PitchesCollection.InsertOne(ctx, pitch); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db insert failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"pitch": pitch})
}

// UpdatePitch changes a pitch's name or explicit color.
func UpdatePitch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pitchID := ps.ByName("id")

	var body struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	set := bson.M{}
	if body.Name != "" {
		set["name"] = body.Name
	}
	if body.Color != "" {
		set["color"] = body.Color
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.PitchesCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": pitchID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Pitch
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "pitch not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"pitch": updated})
}

// DeletePitch removes a pitch. Session and stats history stays; it simply
// stops matching any known pitch in chart grouping.
func DeletePitch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pitchID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.PitchesCollection.DeleteOne(ctx, bson.M{"_id": pitchID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
