package pdf

var FitSize = fitSize
