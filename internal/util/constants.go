package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 测验及格线：答对题数须达到总题数的70%，向上取整
const QuizPassThreshold = 0.7
