package api

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ServerMetrics содержит метрики процесса для /api/stats
type ServerMetrics struct {
	StartTime time.Time
}

// ProcessSnapshot — снимок ресурсов процесса
type ProcessSnapshot struct {
	Uptime        string                 `json:"uptime"`
	MemoryMB      float64                `json:"memory_mb"`
	CPUPercent    float64                `json:"cpu_percent"`
	SystemMemory  float64                `json:"system_memory_percent"`
	Memory        map[string]interface{} `json:"memory"`
	CollectErrors []string               `json:"collect_errors,omitempty"`
}

// NewServerMetrics создает новый экземпляр метрик
func NewServerMetrics() *ServerMetrics {
	return &ServerMetrics{
		StartTime: time.Now(),
	}
}

// GetUptime возвращает время работы процесса
func (sm *ServerMetrics) GetUptime() string {
	uptime := time.Since(sm.StartTime)

	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	} else if hours > 0 {
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	}
	return fmt.Sprintf("%dс", seconds)
}

// GetMemoryUsage возвращает использование памяти в MB
func (sm *ServerMetrics) GetMemoryUsage() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / 1024 / 1024
}

// GetCPUUsage возвращает использование CPU процессом в процентах
func (sm *ServerMetrics) GetCPUUsage() (float64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		// Если не удалось получить метрику процесса, попробуем системную
		cpuPercents, err := cpu.Percent(100*time.Millisecond, false)
		if err != nil || len(cpuPercents) == 0 {
			return 0, err
		}
		return cpuPercents[0], nil
	}

	return cpuPercent, nil
}

// GetSystemMemoryUsage возвращает долю занятой памяти системы в процентах
func (sm *ServerMetrics) GetSystemMemoryUsage() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// GetDetailedMemoryStats возвращает детальную статистику памяти
func (sm *ServerMetrics) GetDetailedMemoryStats() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"alloc_mb":       float64(m.Alloc) / 1024 / 1024,
		"total_alloc_mb": float64(m.TotalAlloc) / 1024 / 1024,
		"sys_mb":         float64(m.Sys) / 1024 / 1024,
		"heap_alloc_mb":  float64(m.HeapAlloc) / 1024 / 1024,
		"num_gc":         m.NumGC,
		"goroutines":     runtime.NumGoroutine(),
	}
}

// Snapshot собирает все метрики; ошибки отдельных источников не прерывают сбор
func (sm *ServerMetrics) Snapshot() ProcessSnapshot {
	snap := ProcessSnapshot{
		Uptime:   sm.GetUptime(),
		MemoryMB: sm.GetMemoryUsage(),
		Memory:   sm.GetDetailedMemoryStats(),
	}

	if cpuPercent, err := sm.GetCPUUsage(); err != nil {
		snap.CollectErrors = append(snap.CollectErrors, "cpu: "+err.Error())
	} else {
		snap.CPUPercent = cpuPercent
	}

	if memPercent, err := sm.GetSystemMemoryUsage(); err != nil {
		snap.CollectErrors = append(snap.CollectErrors, "memory: "+err.Error())
	} else {
		snap.SystemMemory = memPercent
	}

	return snap
}
