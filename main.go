package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/sirupsen/logrus"

	"github.com/chalkboard-edu/lessonplan-backend/internal/config"
	"github.com/chalkboard-edu/lessonplan-backend/internal/container"
	"github.com/chalkboard-edu/lessonplan-backend/internal/router"
)

func main() {
	c, err := container.New(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("startup failed")
	}

	r := router.New(router.RouterConfig{
		LessonPlanHandler: c.LessonPlanContainer.Handler,
		FrontendOrigin:    c.FrontendOrigin,
	})

	// Inside Lambda the API Gateway proxy drives the router; everywhere
	// else it is a plain HTTP server.
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		chiLambda := chiadapter.New(r)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return chiLambda.ProxyWithContext(ctx, req)
		})
		return
	}

	port := config.Getenv("PORT", "8080")
	logrus.Infof("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
