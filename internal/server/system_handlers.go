package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/dhasakgbb/physioSim-sub001/internal/database"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/catalog"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/interactions"
)

// SystemHandlers provides system monitoring endpoints
type SystemHandlers struct {
	log             zerolog.Logger
	dataDir         string
	catalogDB       *database.DB
	profilesDB      *database.DB
	stacksDB        *database.DB
	catalogRepo     *catalog.Repository
	interactionRepo *interactions.Repository
	startedAt       time.Time
}

// NewSystemHandlers creates system monitoring handlers
func NewSystemHandlers(
	log zerolog.Logger,
	dataDir string,
	catalogDB *database.DB,
	profilesDB *database.DB,
	stacksDB *database.DB,
	catalogRepo *catalog.Repository,
	interactionRepo *interactions.Repository,
) *SystemHandlers {
	return &SystemHandlers{
		log:             log.With().Str("handler", "system").Logger(),
		dataDir:         dataDir,
		catalogDB:       catalogDB,
		profilesDB:      profilesDB,
		stacksDB:        stacksDB,
		catalogRepo:     catalogRepo,
		interactionRepo: interactionRepo,
		startedAt:       time.Now(),
	}
}

// SystemStatusResponse represents overall service status
type SystemStatusResponse struct {
	Status           string  `json:"status"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	CPUPercent       float64 `json:"cpu_percent"`
	RAMPercent       float64 `json:"ram_percent"`
	CompoundCount    int     `json:"compound_count"`
	InteractionCount int     `json:"interaction_count"`
	ProfileCount     int     `json:"profile_count"`
	StackCount       int     `json:"stack_count"`
	SnapshotCount    int     `json:"snapshot_count"`
	LastChecked      string  `json:"last_checked"`
}

// DatabaseStatsResponse represents database statistics
type DatabaseStatsResponse struct {
	Databases   []DBInfo `json:"databases"`
	TotalSizeMB float64  `json:"total_size_mb"`
	LastChecked string   `json:"last_checked"`
}

// DBInfo represents information about a single database
type DBInfo struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	SizeMB    float64 `json:"size_mb"`
	WALSizeMB float64 `json:"wal_size_mb"`
	PageCount int64   `json:"page_count,omitempty"`
}

// DiskUsageResponse represents disk usage statistics
type DiskUsageResponse struct {
	DataDirMB float64 `json:"data_dir_mb"`
	TotalMB   float64 `json:"total_mb"`
}

// HandleSystemStatus returns service status with host resource usage
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPercent, ramPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:        "healthy",
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
		CPUPercent:    cpuPercent,
		RAMPercent:    ramPercent,
		LastChecked:   time.Now().Format(time.RFC3339),
	}

	if h.catalogRepo != nil {
		response.CompoundCount = h.catalogRepo.Count()
	}
	if h.interactionRepo != nil {
		response.InteractionCount = h.interactionRepo.Count()
	}

	if h.profilesDB != nil {
		if err := h.profilesDB.QueryRow(`SELECT COUNT(*) FROM profiles`).Scan(&response.ProfileCount); err != nil {
			h.log.Error().Err(err).Msg("Failed to count profiles")
			response.Status = "degraded"
		}
	}
	if h.stacksDB != nil {
		if err := h.stacksDB.QueryRow(`SELECT COUNT(*) FROM stacks`).Scan(&response.StackCount); err != nil {
			h.log.Error().Err(err).Msg("Failed to count stacks")
			response.Status = "degraded"
		}
		if err := h.stacksDB.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&response.SnapshotCount); err != nil {
			h.log.Error().Err(err).Msg("Failed to count snapshots")
			response.Status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleDatabaseStats returns database statistics
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting database stats")

	databases := []DBInfo{}
	totalSizeMB := 0.0

	for _, db := range []*database.DB{h.catalogDB, h.profilesDB, h.stacksDB} {
		if db == nil {
			continue
		}

		info := DBInfo{
			Name: db.Name(),
			Path: db.Path(),
		}
		if stats, err := db.GetStats(); err != nil {
			h.log.Warn().Err(err).Str("database", db.Name()).Msg("Failed to get database stats")
		} else {
			info.SizeMB = float64(stats.SizeBytes) / 1024 / 1024
			info.WALSizeMB = float64(stats.WALSizeBytes) / 1024 / 1024
			info.PageCount = stats.PageCount
		}
		totalSizeMB += info.SizeMB + info.WALSizeMB
		databases = append(databases, info)
	}

	response := DatabaseStatsResponse{
		Databases:   databases,
		TotalSizeMB: totalSizeMB,
		LastChecked: time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleDiskUsage returns disk usage statistics
func (h *SystemHandlers) HandleDiskUsage(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting disk usage")

	dataDirSize := h.getDirSize(h.dataDir)

	response := DiskUsageResponse{
		DataDirMB: dataDirSize,
		TotalMB:   dataDirSize,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// getDirSize calculates total size of a directory in MB
func (h *SystemHandlers) getDirSize(dirPath string) float64 {
	var totalSize int64

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			totalSize += info.Size()
		}
		return nil
	})

	if err != nil {
		h.log.Warn().Err(err).Str("dir", dirPath).Msg("Failed to calculate directory size")
		return 0
	}

	return float64(totalSize) / 1024 / 1024
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a 100ms sample so the status call stays fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
