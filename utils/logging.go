package utils

import "log"

func LogInfo(msg string, args ...interface{}) {
	log.Printf("[INFO] "+msg, args...)
}

func LogError(msg string, args ...interface{}) {
	log.Printf("[ERROR] "+msg, args...)
}

func LogDebug(msg string, args ...interface{}) {
	log.Printf("[DEBUG] "+msg, args...)
}

func LogDB(msg string, args ...interface{}) {
	log.Printf("[DB] "+msg, args...)
}

func LogParse(msg string, args ...interface{}) {
	log.Printf("[PARSE] "+msg, args...)
}

func LogShuffle(msg string, args ...interface{}) {
	log.Printf("[SHUFFLE] "+msg, args...)
}

func LogVersion(msg string, args ...interface{}) {
	log.Printf("[VERSION] "+msg, args...)
}

func LogStartup(msg string, args ...interface{}) {
	log.Printf("[STARTUP] "+msg, args...)
}
