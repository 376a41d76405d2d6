package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pitchpro/db"
	"pitchpro/mailer"
	"pitchpro/rdx"
	"pitchpro/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Mail is the outbound mail sender used for reset codes. nil means no
// mail provider is configured and codes are only logged.
var Mail *mailer.Sender

const resetCodeTTL = 15 * time.Minute

func passwordResetHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Do not reveal whether the address exists.
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err != nil {
		utils.SendResponse(w, http.StatusOK, nil, "If the account exists, a reset code has been sent", nil)
		return
	}

	code := utils.GenerateRandomDigitString(6)
	if err := rdx.SetWithExpiry("reset:"+input.Email, code, resetCodeTTL); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue reset code")
		return
	}

	if Mail != nil {
		if err := Mail.SendPasswordReset(input.Email, code); err != nil {
			log.Printf("Password reset mail to %s failed: %v", input.Email, err)
		}
	} else {
		log.Printf("Password reset code for %s: %s", input.Email, code)
	}

	utils.SendResponse(w, http.StatusOK, nil, "If the account exists, a reset code has been sent", nil)
}
