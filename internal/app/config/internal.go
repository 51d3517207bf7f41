package config

type InternalConfig struct {
	App       App
	IPFeed    IPFeed
	Operation Operation
	Mailer    Mailer
	Minio     AppMinio
	MongoDB   AppMongoDB
	JWT       JWT
}

type App struct {
	Env                     string
	Port                    string
	Version                 string
	EndpointPrefix          string
	Timezone                string
	MaxRequests             int
	ShutdownTimeout         int
	RequestTimeoutInSeconds int
}

type IPFeed struct {
	BaseUrl          string
	TimeoutInSeconds int
}

type Operation struct {
	// CodeLength is the number of characters in a minted operation code.
	CodeLength int
	// ValidityWindowInMinutes bounds how long an emailed code stays
	// redeemable before the sweeper expires it.
	ValidityWindowInMinutes int
	SweepIntervalInMinutes  int
}

type Mailer struct {
	RabbitMQMailerQueue string
}

type AppMinio struct {
	BucketName                    string
	PresignedUrlExpiryTimeInHours int
}

type AppMongoDB struct {
	DbName string
}

type JWT struct {
	Secret                      string
	ResultTokenExpTimeInMinutes int
}
