package main

const (
	maxMessages = 500
)

// statusLog feeds the on-screen message area; errors logged through logError
// land here as well.
var statusLog = messageLog{max: maxMessages}

func statusMessage(msg string) {
	if msg == "" {
		return
	}
	statusLog.Add(msg)
}

func getStatusMessages() []string {
	format := gs.TimestampFormat
	if format == "" {
		format = "3:04PM"
	}
	return statusLog.Entries(format, gs.StatusTimestamps)
}
