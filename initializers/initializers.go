package initializers

import (
	"context"

	"attendance-backend/config"
	"attendance-backend/fiberlog"
	authhandler "attendance-backend/lib/auth"
	employeehandler "attendance-backend/lib/employee"
	xlsexport "attendance-backend/lib/export/xls"
	identityclient "attendance-backend/lib/identity/client"
	requesthandler "attendance-backend/lib/request"
	"attendance-backend/lib/request/profiles"
	requeststats "attendance-backend/lib/request/stats"
	connectionhub "attendance-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitRedisConnection()
	InitSmtp()
	connectionhub.Init()
	identityclient.NewProvider(config.Conf.Directory.Host)
	employeehandler.NewHandler()
	authhandler.NewHandler()
	requesthandler.NewHandler(profiles.Load(config.Conf.Storage.ProfilesPath))
	requeststats.NewHandler()
	xlsexport.NewHandler()
}
