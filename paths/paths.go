package paths

const (
	RegisterWebhook         = "/admin/register"
	UpdateFileMetadata      = "/admin/updateFileMetadata"
	QueueUpdateFileMetadata = "/admin/queueUpdateFileMetadata"
	RotateReservoir         = "/admin/rotateReservoir"

	WebUI = "/webui/"
)
