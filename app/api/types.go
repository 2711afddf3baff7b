package api

import (
	"github.com/lysyi3m/clan-comb/app/clan"
	"github.com/lysyi3m/clan-comb/app/database"
	"github.com/lysyi3m/clan-comb/app/hiscores"
	"github.com/lysyi3m/clan-comb/app/tasks"
)

type Handler struct {
	memberRepo   database.MemberRepository
	activityRepo database.ActivityRepository
	itemRepo     database.ItemRepository
	configCache  *clan.ConfigCache
	hiscores     *hiscores.Client
	scheduler    tasks.TaskSchedulerInterface
}
