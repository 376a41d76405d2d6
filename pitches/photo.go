package pitches

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"pitchpro/db"
	"pitchpro/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const pitchPhotoDir = "static/pitchpic"

// UploadPitchPhoto accepts a multipart image, stores the original plus a
// 300px-wide thumbnail, and records the public path on the pitch document.
func UploadPitchPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pitchID := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "missing photo")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "failed to decode image")
		return
	}

	fileName := pitchID + ".jpg"
	thumbDir := filepath.Join(pitchPhotoDir, "thumb")
	if err := utils.EnsureDir(pitchPhotoDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create upload directory")
		return
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create thumbnail directory")
		return
	}

	if err := imaging.Save(img, filepath.Join(pitchPhotoDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to save thumbnail")
		return
	}

	photoPath := fmt.Sprintf("/static/pitchpic/%s", fileName)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.PitchesCollection.UpdateOne(ctx,
		bson.M{"_id": pitchID},
		bson.M{"$set": bson.M{"photo": photoPath}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "db update failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"photo": photoPath})
}
