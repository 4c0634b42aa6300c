package config

import (
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/GateBay/nft-marketplace/internal/entity"
	"github.com/GateBay/nft-marketplace/internal/log"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool

	ApiPort    string
	HealthPort string

	// PlatformAccount receives the marketplace fee share of every sale.
	PlatformAccount string
	PlatformFee     entity.Fraction

	RoyaltyCacheTtl int

	TokenContract TokenContractConfig
	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
}

type AwsConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	QueueUrl  string
}

// TokenContractConfig describes the external token-issuing contract.
// Account is the only caller trusted by the approval callbacks.
type TokenContractConfig struct {
	Account string
	Url     string
	Debug   bool
	Timeout int
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

func Init(service string) {
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Unable to load .env")
	}

	initLogger(service)

	if !Get().PlatformFee.Valid() {
		zap.L().With(zap.String("fee", Get().PlatformFee.String())).Fatal("Invalid platform fee")
	}
}

func initLogger(service string) {
	log.NewLogger(getString("LOG_PATH", "./var/"+service+".log"), Get().Debug, getString("SENTRY_DSN", ""))
}

func Get() *Config {
	return &Config{
		Env:             getString("ENV", ""),
		Network:         getString("NETWORK", "mainnet"),
		Index:           getString("INDEX_NAME", "market"),
		Debug:           getBool("DEBUG", false),
		ApiPort:         getString("API_PORT", "8080"),
		HealthPort:      getString("HEALTH_PORT", "8081"),
		PlatformAccount: getString("PLATFORM_ACCOUNT", ""),
		PlatformFee: entity.Fraction{
			Num: getUint("PLATFORM_FEE_NUM", 3),
			Den: getUint("PLATFORM_FEE_DEN", 100),
		},
		RoyaltyCacheTtl: getInt("ROYALTY_CACHE_TTL", 0),
		Aws: AwsConfig{
			AccessKey: getString("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getString("AWS_SECRET_KEY_ID", ""),
			Region:    getString("AWS_REGION", ""),
			QueueUrl:  getString("AWS_QUEUE_URL", ""),
		},
		TokenContract: TokenContractConfig{
			Account: getString("TOKEN_CONTRACT_ACCOUNT", ""),
			Url:     getString("TOKEN_CONTRACT_URL", ""),
			Timeout: getInt("TOKEN_CONTRACT_TIMEOUT", 30),
			Debug:   getBool("TOKEN_CONTRACT_DEBUG", false),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0), ","),
			Sniff:            getBool("ELASTIC_SEARCH_SNIFF", true),
			HealthCheck:      getBool("ELASTIC_SEARCH_HEALTH_CHECK", true),
			Debug:            getBool("ELASTIC_SEARCH_DEBUG", false),
			Username:         getString("ELASTIC_SEARCH_USERNAME", ""),
			Password:         getString("ELASTIC_SEARCH_PASSWORD", ""),
			MappingDir:       getString("ELASTIC_SEARCH_MAPPING_DIR", "/data/mappings"),
			BulkPersistCount: getInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300),
			Refresh:          getString("ELASTIC_SEARCH_REFRESH", "wait_for"),
		},
	}
}

func getString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	valStr := getString(key, "")
	val, _, err := big.ParseFloat(valStr, 10, 0, big.ToNearestEven)
	if err != nil {
		return defaultValue
	}

	intVal, _ := val.Int64()
	return int(intVal)
}

func getUint(key string, defaultValue uint) uint {
	return uint(getInt(key, int(defaultValue)))
}

func getUint64(key string, defaultValue uint) uint64 {
	return uint64(getInt(key, int(defaultValue)))
}

func getBool(key string, defaultValue bool) bool {
	valStr := getString(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultValue
}

func getSlice(key string, defaultVal []string, sep string) []string {
	valStr := getString(key, "")
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, sep)
}
