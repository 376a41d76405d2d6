package organizations

import (
	"context"
	"log"
	"net/http"
	"time"

	"pitchpro/db"
	"pitchpro/globals"
	"pitchpro/models"
	"pitchpro/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// PitchesForOrg returns every pitch belonging to an organization.
func PitchesForOrg(ctx context.Context, orgID string) ([]models.Pitch, error) {
	cur, err := db.PitchesCollection.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pitches []models.Pitch
	for cur.Next(ctx) {
		var p models.Pitch
		if err := cur.Decode(&p); err != nil {
			log.Printf("[Orgs] pitch decode failed: %v", err)
			continue
		}
		if p.Name == "" {
			p.Name = "Pitch " + p.ID
		}
		pitches = append(pitches, p)
	}
	return pitches, cur.Err()
}

// MembershipsForUser resolves the organizations a user administers. Each
// entry of organizations_list may use any of the supported reference
// encodings; unresolvable entries are skipped, a failed org lookup degrades
// to an id-only record rather than dropping the membership.
func MembershipsForUser(ctx context.Context, user models.User) []models.Organization {
	var orgs []models.Organization
	for _, ref := range user.OrganizationsList {
		orgID, ok := models.RefID(ref)
		if !ok {
			continue
		}
		var org models.Organization
		err := db.OrganizationsCollection.FindOne(ctx, bson.M{"_id": orgID}).Decode(&org)
		if err != nil {
			log.Printf("[Orgs] fetch %s failed: %v", orgID, err)
			org = models.Organization{ID: orgID, Name: "Organization " + orgID}
		}
		if org.Name == "" {
			org.Name = "Unknown Organization"
		}
		orgs = append(orgs, org)
	}
	return orgs
}

// ListMyOrganizations returns the authenticated user's organizations; the
// client picks one and scopes every downstream query by it.
func ListMyOrganizations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "missing user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "user not found")
		return
	}

	orgs := MembershipsForUser(ctx, user)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"organizations": orgs})
}

// GetOrganization returns one organization document.
func GetOrganization(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var org models.Organization
	if err := db.OrganizationsCollection.FindOne(ctx, bson.M{"_id": orgID}).Decode(&org); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "organization not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"organization": org})
}

// ListPitches returns an organization's pitches.
func ListPitches(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pitches, err := PitchesForOrg(ctx, orgID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load pitches")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"pitches": pitches})
}
