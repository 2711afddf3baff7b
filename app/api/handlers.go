package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/clan-comb/app/clan"
	"github.com/lysyi3m/clan-comb/app/database"
	"github.com/lysyi3m/clan-comb/app/hiscores"
	"github.com/lysyi3m/clan-comb/app/tasks"
)

func NewHandler(configCache *clan.ConfigCache, memberRepo database.MemberRepository,
	activityRepo database.ActivityRepository, itemRepo database.ItemRepository,
	hiscoresClient *hiscores.Client, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		memberRepo:   memberRepo,
		activityRepo: activityRepo,
		itemRepo:     itemRepo,
		configCache:  configCache,
		hiscores:     hiscoresClient,
		scheduler:    scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if memberCount, err := h.memberRepo.GetMemberCount(); err == nil {
		health["members"] = memberCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.activityRepo.GetActivityStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_activity_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	response := map[string]interface{}{
		"activities": map[string]interface{}{
			"total":        stats.Total,
			"classified":   stats.Classified,
			"unclassified": stats.Unclassified,
			"exempt":       stats.Exempt,
		},
	}

	if memberCount, err := h.memberRepo.GetMemberCount(); err == nil {
		response["members"] = memberCount
	}
	if itemCount, err := h.itemRepo.GetItemCount(); err == nil {
		response["items"] = itemCount
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.memberRepo.GetMembers()
	if err != nil {
		slog.Error("Database error", "operation", "get_members", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	list := make([]map[string]interface{}, 0, len(members))
	for _, member := range members {
		list = append(list, map[string]interface{}{
			"name":       member.Name,
			"rank":       member.Rank,
			"experience": member.Experience,
			"kills":      member.Kills,
			"updated_at": member.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"members": list,
		"total":   len(list),
	})
}

func (h *Handler) GetMemberActivities(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing member name parameter"})
		return
	}

	member, err := h.memberRepo.GetMember(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_member", "member", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	includeExempt := c.Query("include_exempt") == "true"

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}

	activities, err := h.activityRepo.GetActivitiesForMember(name, includeExempt, limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_activities", "member", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	list := make([]map[string]interface{}, 0, len(activities))
	for _, activity := range activities {
		entry := map[string]interface{}{
			"id":      activity.ID,
			"date":    activity.Date,
			"text":    activity.Text,
			"details": activity.Details,
		}
		if activity.ActivityType != "" {
			entry["activity_type"] = activity.ActivityType
		}
		if activity.Status != "" {
			entry["status"] = activity.Status
		}
		list = append(list, entry)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"member":     name,
		"activities": list,
		"total":      len(list),
	})
}

func (h *Handler) GetPlayerStats(c *gin.Context) {
	player := c.Param("name")
	if player == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing player name parameter"})
		return
	}

	stats, err := h.hiscores.Fetch(c.Request.Context(), player)
	if err != nil {
		slog.Error("Hiscores lookup failed", "player", player, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": fmt.Sprintf("Could not retrieve stats for %s. Please check the username and try again.", player),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListClans(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	clans := make([]map[string]interface{}, 0, len(configs))
	for _, clanConfig := range configs {
		clans = append(clans, map[string]interface{}{
			"name":             clanConfig.Name,
			"clan":             clanConfig.Clan,
			"enabled":          clanConfig.Settings.Enabled,
			"refresh_interval": clanConfig.Settings.GetRefreshInterval().String(),
			"activities":       clanConfig.Settings.Activities,
			"recency_days":     clanConfig.Settings.RecencyDays,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"clans": clans,
		"total": len(clans),
	})
}

func (h *Handler) APISyncClan(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing clan name parameter"})
		return
	}

	if err := h.scheduler.EnqueueSyncClan(name); err != nil {
		slog.Error("Failed to enqueue clan sync", "clan", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Failed to queue sync",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Sync queued",
		"clan":    name,
	})
}
