package main

import (
	"flag"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/open-ballot/ballotboard/app"
	"github.com/open-ballot/ballotboard/config"
	"github.com/open-ballot/ballotboard/logging"
)

func initFlags() {
	flag.String(config.FlagConfigPath, "", "config file path")
	flag.String(config.FlagConfigPrivateKey, "", "voter private key")
	flag.String(config.FlagConfigDbPass, "", "snapshot db password")

	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()
	err := viper.BindPFlags(pflag.CommandLine)
	if err != nil {
		panic(err)
	}
}

func printUsage() {
	fmt.Print("usage: ./ballotboard --config-path configFile\n")
}

func main() {
	initFlags()

	configFilePath := viper.GetString(config.FlagConfigPath)
	if configFilePath == "" {
		printUsage()
		return
	}
	cfg := config.ParseConfigFromFile(configFilePath)
	if cfg == nil {
		fmt.Println("failed to get configuration")
		return
	}

	logging.InitLogger(&cfg.LogConfig)

	app.NewApp(cfg).Start()
	select {}
}
