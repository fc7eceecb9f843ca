package tgapi

import "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	FileTypeDocument  = "document"
	FileTypeVideo     = "video"
	FileTypeAudio     = "audio"
	FileTypeAnimation = "animation"
)

var FileTypes = []string{FileTypeDocument, FileTypeVideo, FileTypeAudio, FileTypeAnimation}

type TGFile struct {
	FileID       string
	FileUniqueID string
	FileName     string
	MimeType     string
	FileSize     int

	FileType string
}

func TGFileFromDocument(document *tgbotapi.Document) *TGFile {
	return &TGFile{
		FileID:       document.FileID,
		FileUniqueID: document.FileUniqueID,
		FileName:     document.FileName,
		MimeType:     document.MimeType,
		FileSize:     document.FileSize,
		FileType:     FileTypeDocument,
	}
}

func TGFileFromVideo(video *tgbotapi.Video) *TGFile {
	return &TGFile{
		FileID:       video.FileID,
		FileUniqueID: video.FileUniqueID,
		FileName:     video.FileName,
		MimeType:     video.MimeType,
		FileSize:     video.FileSize,
		FileType:     FileTypeVideo,
	}
}

func TGFileFromAudio(audio *tgbotapi.Audio) *TGFile {
	name := audio.FileName
	if name == "" && audio.Title != "" {
		name = audio.Performer + " - " + audio.Title
	}
	return &TGFile{
		FileID:       audio.FileID,
		FileUniqueID: audio.FileUniqueID,
		FileName:     name,
		MimeType:     audio.MimeType,
		FileSize:     audio.FileSize,
		FileType:     FileTypeAudio,
	}
}

func TGFileFromChatAnimation(animation *tgbotapi.Animation) *TGFile {
	return &TGFile{
		FileID:       animation.FileID,
		FileUniqueID: animation.FileUniqueID,
		FileName:     animation.FileName,
		MimeType:     animation.MimeType,
		FileSize:     animation.FileSize,
		FileType:     FileTypeAnimation,
	}
}

// TGFileFromMessage picks the indexable media of message, if any.
func TGFileFromMessage(message *tgbotapi.Message) *TGFile {
	switch {
	case message.Animation != nil:
		// Animations also carry a Document.
		return TGFileFromChatAnimation(message.Animation)
	case message.Document != nil:
		return TGFileFromDocument(message.Document)
	case message.Video != nil:
		return TGFileFromVideo(message.Video)
	case message.Audio != nil:
		return TGFileFromAudio(message.Audio)
	}
	return nil
}

// MakeFileable builds a message that resends a stored file with its caption.
func MakeFileable(chatID int64, fileID, fileType, caption string, entities []tgbotapi.MessageEntity) tgbotapi.Chattable {
	switch fileType {
	case FileTypeAnimation:
		share := tgbotapi.NewAnimation(chatID, tgbotapi.FileID(fileID))
		share.Caption, share.CaptionEntities = caption, entities
		return share
	case FileTypeVideo:
		share := tgbotapi.NewVideo(chatID, tgbotapi.FileID(fileID))
		share.Caption, share.CaptionEntities = caption, entities
		return share
	case FileTypeAudio:
		share := tgbotapi.NewAudio(chatID, tgbotapi.FileID(fileID))
		share.Caption, share.CaptionEntities = caption, entities
		return share
	}
	share := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileID))
	share.Caption, share.CaptionEntities = caption, entities
	return share
}
