package config

type WorkerKeyStruct struct {
	UsageEventsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	UsageEventsQueue: "usage_events_queue",
}
