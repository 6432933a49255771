package initializers

import (
	"context"

	"job-application-backend/config"
	"job-application-backend/fiberlog"
	"job-application-backend/lib/candidate"
	filestorage "job-application-backend/lib/file-storage"
	xlsexport "job-application-backend/lib/export/xls"
	notificationhandler "job-application-backend/lib/notification"
	statushistoryhandler "job-application-backend/lib/status-history"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	if config.Conf.FileStore.Backend == "s3" {
		InitS3()
	}
	InitSmtp()
	if err := filestorage.NewHandler(ctx); err != nil {
		panic(err.Error())
	}
	notificationhandler.NewHandler()
	statushistoryhandler.NewHandler()
	candidate.NewHandler()
	xlsexport.NewHandler()
}
