package logging

import (
	"fmt"
	"os"
	"sync"
)

// LoggerManager раздаёт логгеры компонентов и держит общий уровень консоли
type LoggerManager struct {
	mu           sync.RWMutex
	loggers      map[string]*Logger
	consoleLevel *LogLevel // если задан, применяется ко всем логгерам
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

func newLoggerManager() *LoggerManager {
	return &LoggerManager{loggers: make(map[string]*Logger)}
}

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = newLoggerManager()
	})
	return globalManager
}

// GetLogger возвращает логгер компонента, создавая его при первом обращении
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.RLock()
	logger, exists := lm.loggers[component]
	lm.mu.RUnlock()
	if exists {
		return logger, nil
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	if logger, exists := lm.loggers[component]; exists {
		return logger, nil
	}

	logger, err := NewLogger(component)
	if err != nil {
		return nil, fmt.Errorf("logger for %s: %w", component, err)
	}
	if lm.consoleLevel != nil {
		logger.minConsoleLevel = *lm.consoleLevel
	}
	lm.loggers[component] = logger
	return logger, nil
}

// Component возвращает логгер компонента; если файл логов недоступен,
// компонент пишет только в консоль
func (lm *LoggerManager) Component(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err == nil {
		return logger
	}

	Warn("⚠️ Логгер %s без файла: %v", component, err)
	level := ParseLevel(os.Getenv("BLOCKVERSE_LOG_LEVEL"))
	lm.mu.Lock()
	defer lm.mu.Unlock()
	if lm.consoleLevel != nil {
		level = *lm.consoleLevel
	}
	logger = NewWriterLogger(component, os.Stdout, level)
	lm.loggers[component] = logger
	return logger
}

// SetConsoleLevel меняет уровень консоли у всех текущих и будущих логгеров
func (lm *LoggerManager) SetConsoleLevel(level LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.consoleLevel = &level
	for _, logger := range lm.loggers {
		logger.minConsoleLevel = level
	}
}

// Set регистрирует готовый логгер для компонента (заменяя существующий)
func (lm *LoggerManager) Set(component string, logger *Logger) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.loggers[component] = logger
}

// CloseAll закрывает все логгеры
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("close logger for %s: %w", component, err)
		}
	}
	lm.loggers = make(map[string]*Logger)
	return lastErr
}

func GetWorldLogger() *Logger {
	return GetLoggerManager().Component("world")
}

func GetStreamingLogger() *Logger {
	return GetLoggerManager().Component("streaming")
}

func GetAPILogger() *Logger {
	return GetLoggerManager().Component("api")
}
