package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shishir2405/notenex-api/internal/models"
)

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Subject     string `json:"subject" binding:"max=200"`
}

type GroupPostRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func CreateGroup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetString("user_id"))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid user ID")
			return
		}

		var req CreateGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var existing int64
		if err := db.Model(&models.StudyGroup{}).Where("name = ?", req.Name).Count(&existing).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to create group")
			return
		}
		if existing > 0 {
			respondError(c, http.StatusConflict, "A group with this name already exists")
			return
		}

		group := models.StudyGroup{
			Name:        req.Name,
			Description: req.Description,
			Subject:     req.Subject,
			CreatedBy:   userID,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&group).Error; err != nil {
				return err
			}
			// Creator joins automatically
			return tx.Exec("INSERT INTO study_group_members (study_group_id, user_id) VALUES (?, ?)",
				group.ID, userID).Error
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to create group")
			return
		}

		respondData(c, http.StatusCreated, group)
	}
}

func ListGroups(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var groups []models.StudyGroup
		err := db.Model(&models.StudyGroup{}).
			Select("study_groups.*, " +
				"(SELECT COUNT(*) FROM study_group_members WHERE study_group_members.study_group_id = study_groups.id) AS member_count").
			Preload("Creator").
			Order("study_groups.created_at DESC").
			Find(&groups).Error
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch groups")
			return
		}

		respondData(c, http.StatusOK, groups)
	}
}

func isGroupMember(db *gorm.DB, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Table("study_group_members").
		Where("study_group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func JoinGroup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, userID, ok := parseGroupIDs(c)
		if !ok {
			return
		}

		var group models.StudyGroup
		if err := db.First(&group, "id = ?", groupID).Error; err != nil {
			respondError(c, http.StatusNotFound, "Group not found")
			return
		}

		member, err := isGroupMember(db, groupID, userID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to join group")
			return
		}
		if member {
			respondError(c, http.StatusConflict, "Already a member of this group")
			return
		}

		if err := db.Exec("INSERT INTO study_group_members (study_group_id, user_id) VALUES (?, ?)",
			groupID, userID).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to join group")
			return
		}

		respondMessage(c, http.StatusOK, "Joined group")
	}
}

func LeaveGroup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, userID, ok := parseGroupIDs(c)
		if !ok {
			return
		}

		member, err := isGroupMember(db, groupID, userID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to leave group")
			return
		}
		if !member {
			respondError(c, http.StatusNotFound, "Not a member of this group")
			return
		}

		if err := db.Exec("DELETE FROM study_group_members WHERE study_group_id = ? AND user_id = ?",
			groupID, userID).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to leave group")
			return
		}

		respondMessage(c, http.StatusOK, "Left group")
	}
}

func ListGroupPosts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid group ID")
			return
		}

		var posts []models.GroupPost
		if err := db.Where("group_id = ?", groupID).
			Preload("User").
			Order("created_at asc").
			Find(&posts).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch posts")
			return
		}

		respondData(c, http.StatusOK, posts)
	}
}

func CreateGroupPost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, userID, ok := parseGroupIDs(c)
		if !ok {
			return
		}

		var req GroupPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		member, err := isGroupMember(db, groupID, userID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to create post")
			return
		}
		if !member {
			respondError(c, http.StatusForbidden, "Join the group before posting")
			return
		}

		post := models.GroupPost{
			GroupID: groupID,
			UserID:  userID,
			Content: req.Content,
		}
		if err := db.Create(&post).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to create post")
			return
		}

		if err := db.Preload("User").First(&post, "id = ?", post.ID).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch created post")
			return
		}

		respondData(c, http.StatusCreated, post)
	}
}

func DeleteGroup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, userID, ok := parseGroupIDs(c)
		if !ok {
			return
		}

		var group models.StudyGroup
		if err := db.First(&group, "id = ?", groupID).Error; err != nil {
			respondError(c, http.StatusNotFound, "Group not found")
			return
		}

		if group.CreatedBy != userID && c.GetString("role") != string(models.RoleAdmin) {
			respondError(c, http.StatusForbidden, "Not authorized to delete this group")
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM study_group_members WHERE study_group_id = ?", groupID).Error; err != nil {
				return err
			}
			if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupPost{}).Error; err != nil {
				return err
			}
			return tx.Delete(&group).Error
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to delete group")
			return
		}

		respondMessage(c, http.StatusOK, "Group deleted")
	}
}

func parseGroupIDs(c *gin.Context) (groupID, userID uuid.UUID, ok bool) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid group ID")
		return groupID, userID, false
	}
	userID, err = uuid.Parse(c.GetString("user_id"))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid user ID")
		return groupID, userID, false
	}
	return groupID, userID, true
}
