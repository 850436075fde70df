package usecase

import "github.com/sirupsen/logrus"

var logger = logrus.WithField("layer", "usecase")
