package app

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/open-ballot/ballotboard/config"
	"github.com/open-ballot/ballotboard/db/dao"
	"github.com/open-ballot/ballotboard/db/model"
	"github.com/open-ballot/ballotboard/executor"
	"github.com/open-ballot/ballotboard/keys"
	"github.com/open-ballot/ballotboard/leaderboard"
	"github.com/open-ballot/ballotboard/metrics"
	"github.com/open-ballot/ballotboard/poll"
	"github.com/open-ballot/ballotboard/session"
	"github.com/open-ballot/ballotboard/state"
	"github.com/open-ballot/ballotboard/vote"
	"github.com/open-ballot/ballotboard/wiper"
)

type App struct {
	config         *config.Config
	executor       *executor.Executor
	store          *state.Store
	refresher      *state.Refresher
	pollRepository *poll.Repository
	pollCreator    *poll.Creator
	voteWorkflow   *vote.Workflow
	identity       *session.Session
	metricService  *metrics.MetricService
	snapshotWiper  *wiper.SnapshotWiper
}

func NewApp(cfg *config.Config) *App {
	db := openDB(&cfg.DBConfig)

	model.InitPollTable(db)
	model.InitLeaderboardTable(db)

	pollDao := dao.NewPollDao(db)
	leaderboardDao := dao.NewLeaderboardDao(db)
	daoManager := dao.NewDaoManager(pollDao, leaderboardDao)

	executor := executor.NewExecutor(cfg)

	metricService := metrics.NewMetricService(cfg)

	store := state.NewStore()
	pollRepository := poll.NewRepository(executor, metricService)
	leaderboardBuilder := leaderboard.NewBuilder(executor, metricService)
	refresher := state.NewRefresher(pollRepository, leaderboardBuilder, store,
		daoManager, &cfg.AlertConfig, metricService)

	voteWorkflow := vote.NewWorkflow(executor, refresher, store, metricService)
	pollCreator := poll.NewCreator(executor, refresher, metricService)

	wallet := newWallet(&cfg.ChainConfig)
	identity := session.NewSession(wallet, executor, refresher, store, metricService)

	snapshotWiper := wiper.NewSnapshotWiper(daoManager)

	return &App{
		config:         cfg,
		executor:       executor,
		store:          store,
		refresher:      refresher,
		pollRepository: pollRepository,
		pollCreator:    pollCreator,
		voteWorkflow:   voteWorkflow,
		identity:       identity,
		metricService:  metricService,
		snapshotWiper:  snapshotWiper,
	}
}

func (a *App) Start() {
	go a.metricService.Start()
	go a.snapshotWiper.WipeLoop()

	a.refresher.RestoreSnapshot()
	a.identity.TryRestore()

	interval := time.Duration(a.config.ChainConfig.RefreshInterval) * time.Second
	a.refresher.RefreshLoop(interval)
}

// Store exposes the state holders the presentation layer subscribes to.
func (a *App) Store() *state.Store {
	return a.store
}

func (a *App) VoteWorkflow() *vote.Workflow {
	return a.voteWorkflow
}

func (a *App) PollCreator() *poll.Creator {
	return a.pollCreator
}

func (a *App) Session() *session.Session {
	return a.identity
}

func newWallet(cfg *config.ChainConfig) session.Wallet {
	if cfg.KeyType == config.KeyTypeLocalPrivateKey {
		privateKey := viper.GetString(config.FlagConfigPrivateKey)
		if privateKey == "" {
			privateKey = cfg.PrivateKey
		}
		wallet, err := keys.NewPrivateKeyWallet(privateKey, cfg.ChainId)
		if err != nil {
			panic(fmt.Sprintf("bad private key, err=%+v", err.Error()))
		}
		return wallet
	}
	return keys.NewKeystoreWallet(cfg)
}

func openDB(cfg *config.DBConfig) *gorm.DB {
	var dialector gorm.Dialector
	if cfg.Dialect == config.DBDialectSqlite3 {
		dialector = sqlite.Open(cfg.DBPath)
	} else {
		password := viper.GetString(config.FlagConfigDbPass)
		if password == "" {
			password = cfg.Password
		}
		dbPath := fmt.Sprintf("%s:%s@%s", cfg.Username, password, cfg.DBPath)
		dialector = mysql.Open(dbPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("open db error, err=%+v", err.Error()))
	}

	dbConfig, err := db.DB()
	if err != nil {
		panic(err)
	}
	dbConfig.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConfig.SetMaxOpenConns(cfg.MaxOpenConns)

	return db
}
