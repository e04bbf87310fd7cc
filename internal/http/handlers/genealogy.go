package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/genealogy-backend/internal/domain"
	"github.com/yungbote/genealogy-backend/internal/http/response"
	"github.com/yungbote/genealogy-backend/internal/platform/apierr"
	"github.com/yungbote/genealogy-backend/internal/services"
)

const (
	msgAddPerson       = "Error adding person to the genealogy tree."
	msgAddParentChild  = "Error adding parent-child relationship."
	msgAddMarriage     = "Error adding marriage relationship."
	msgListPeople      = "Error retrieving people from the genealogy tree."
	msgListMales       = "Error retrieving males from the genealogy tree."
	msgListFemales     = "Error retrieving females from the genealogy tree."
	msgListUnmarried   = "Error retrieving unmarried people from the genealogy tree."
	msgListMarried     = "Error retrieving married people from the genealogy tree."
	msgGetPerson       = "Error retrieving person from the genealogy tree."
	msgDeletePerson    = "Error deleting person from the genealogy tree."
	msgDeleteMarriage  = "Error deleting marriage relationship."
	msgPersonNotFound  = "Person not found."
	msgParentsNotFound = "Mother, father or child not found."
	msgSpouseNotFound  = "Spouse not found."
	msgMarriageMissing = "Marriage relationship not found."
)

type GenealogyHandler struct {
	genealogy services.GenealogyService
}

func NewGenealogyHandler(genealogy services.GenealogyService) *GenealogyHandler {
	return &GenealogyHandler{genealogy: genealogy}
}

type parentChildRequest struct {
	MotherID *types.PersonID `json:"motherId"`
	FatherID *types.PersonID `json:"fatherId"`
	ChildID  *types.PersonID `json:"childId"`
}

type marriageRequest struct {
	Spouse1ID *types.PersonID `json:"spouse1Id"`
	Spouse2ID *types.PersonID `json:"spouse2Id"`
}

// POST /genealogy/addPerson
func (h *GenealogyHandler) AddPerson(c *gin.Context) {
	var req types.PersonAttributes
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_request", msgAddPerson, err)
		return
	}
	person, err := h.genealogy.AddPerson(c.Request.Context(), req)
	if err != nil {
		respondFailure(c, err, msgAddPerson, msgPersonNotFound)
		return
	}
	response.RespondOK(c, gin.H{"person": person})
}

// POST /genealogy/addParentChildRelationship
func (h *GenealogyHandler) AddParentChild(c *gin.Context) {
	var req parentChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_request", msgAddParentChild, err)
		return
	}
	if req.MotherID == nil || req.FatherID == nil || req.ChildID == nil {
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_request", msgAddParentChild,
			types.ValidationError("motherId, fatherId and childId are required"))
		return
	}
	if err := h.genealogy.AddParentChild(c.Request.Context(), *req.MotherID, *req.FatherID, *req.ChildID); err != nil {
		respondFailure(c, err, msgAddParentChild, msgParentsNotFound)
		return
	}
	response.RespondOK(c, gin.H{"message": "Parent-child relationship added."})
}

// POST /genealogy/addMarriageRelationship
func (h *GenealogyHandler) AddMarriage(c *gin.Context) {
	var req marriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_request", msgAddMarriage, err)
		return
	}
	if req.Spouse1ID == nil || req.Spouse2ID == nil {
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_request", msgAddMarriage,
			types.ValidationError("spouse1Id and spouse2Id are required"))
		return
	}
	spouses, err := h.genealogy.AddMarriage(c.Request.Context(), *req.Spouse1ID, *req.Spouse2ID)
	if err != nil {
		respondFailure(c, err, msgAddMarriage, msgSpouseNotFound)
		return
	}
	response.RespondOK(c, gin.H{"spouses": spouses})
}

// GET /genealogy/getAllPeople
func (h *GenealogyHandler) ListPeople(c *gin.Context) {
	people, err := h.genealogy.ListPeople(c.Request.Context())
	if err != nil {
		respondFailure(c, err, msgListPeople, msgPersonNotFound)
		return
	}
	response.RespondOK(c, gin.H{"people": people})
}

// GET /genealogy/getAllMales
func (h *GenealogyHandler) ListMales(c *gin.Context) {
	males, err := h.genealogy.ListByGender(c.Request.Context(), types.GenderMale)
	if err != nil {
		respondFailure(c, err, msgListMales, msgPersonNotFound)
		return
	}
	response.RespondOK(c, gin.H{"males": males})
}

// GET /genealogy/getAllFemales
func (h *GenealogyHandler) ListFemales(c *gin.Context) {
	females, err := h.genealogy.ListByGender(c.Request.Context(), types.GenderFemale)
	if err != nil {
		respondFailure(c, err, msgListFemales, msgPersonNotFound)
		return
	}
	response.RespondOK(c, gin.H{"females": females})
}

// GET /genealogy/getUnmarriedPeople
func (h *GenealogyHandler) ListUnmarried(c *gin.Context) {
	people, err := h.genealogy.ListUnmarried(c.Request.Context())
	if err != nil {
		respondFailure(c, err, msgListUnmarried, msgPersonNotFound)
		return
	}
	response.RespondOK(c, gin.H{"unmarriedPeople": people})
}

// GET /genealogy/getMarriedPeople
func (h *GenealogyHandler) ListMarried(c *gin.Context) {
	people, err := h.genealogy.ListMarried(c.Request.Context())
	if err != nil {
		respondFailure(c, err, msgListMarried, msgPersonNotFound)
		return
	}
	response.RespondOK(c, gin.H{"marriedPeople": people})
}

// GET /genealogy/getPerson/:personId
func (h *GenealogyHandler) GetPerson(c *gin.Context) {
	id, err := types.ParsePersonID(c.Param("personId"))
	if err != nil {
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_person_id", msgGetPerson, err)
		return
	}
	person, err := h.genealogy.GetPerson(c.Request.Context(), id)
	if err != nil {
		respondFailure(c, err, msgGetPerson, msgPersonNotFound)
		return
	}
	response.RespondOK(c, gin.H{"person": person})
}

// DELETE /genealogy/deletePerson/:personId
func (h *GenealogyHandler) DeletePerson(c *gin.Context) {
	id, err := types.ParsePersonID(c.Param("personId"))
	if err != nil {
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_person_id", msgDeletePerson, err)
		return
	}
	if err := h.genealogy.DeletePerson(c.Request.Context(), id); err != nil {
		respondFailure(c, err, msgDeletePerson, msgPersonNotFound)
		return
	}
	response.RespondOK(c, gin.H{"message": "Person deleted successfully."})
}

// DELETE /genealogy/deleteMarriage/:spouse1Id/:spouse2Id
func (h *GenealogyHandler) DeleteMarriage(c *gin.Context) {
	spouse1, err := types.ParsePersonID(c.Param("spouse1Id"))
	if err != nil {
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_person_id", msgDeleteMarriage, err)
		return
	}
	spouse2, err := types.ParsePersonID(c.Param("spouse2Id"))
	if err != nil {
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_person_id", msgDeleteMarriage, err)
		return
	}
	deleted, err := h.genealogy.DeleteMarriage(c.Request.Context(), spouse1, spouse2)
	if err != nil {
		respondFailure(c, err, msgDeleteMarriage, msgMarriageMissing)
		return
	}
	response.RespondOK(c, gin.H{
		"message":         "Marriage relationship deleted successfully.",
		"deletedMarriage": deleted,
	})
}

// respondFailure maps service errors onto the status taxonomy. Server-side
// failures only ever expose the operation's fixed message.
func respondFailure(c *gin.Context, err error, failMsg, notFoundMsg string) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, types.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", notFoundMsg)
	case types.IsClientError(err):
		response.RespondErrorDetail(c, http.StatusBadRequest, "invalid_input", failMsg, err)
	default:
		code := apierr.CodeOf(err)
		if code == "" {
			code = "internal"
		}
		response.RespondError(c, http.StatusInternalServerError, code, failMsg)
	}
}
